package emailer

import (
	"bytes"
	"html/template"
)

const welcomeSubject = "Welcome to FlavorVault"

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<p>Hi {{.Username}},</p>
<p>your FlavorVault account is ready. Share your first recipe at <a href="{{.Link}}">{{.Link}}</a>.</p>
<p>Happy cooking!</p>
`))

// Welcome builds the subject and html body sent after registration
func Welcome(username string, link string) (string, string, error) {
	var buf bytes.Buffer
	err := welcomeTemplate.Execute(&buf, map[string]string{
		"Username": username,
		"Link":     link,
	})
	if err != nil {
		return "", "", err
	}
	return welcomeSubject, buf.String(), nil
}
