package router

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/flavorvault/flavorvault/model"
	"github.com/flavorvault/flavorvault/util"
)

// pages rendered inside the base layout, with any shared partials they need
var pages = map[string][]string{
	"recipes.html":       nil,
	"recipe.html":        nil,
	"register.html":      nil,
	"login.html":         nil,
	"profile.html":       nil,
	"add_recipe.html":    {"recipe_form.html"},
	"edit_recipe.html":   {"recipe_form.html"},
	"categories.html":    nil,
	"add_category.html":  nil,
	"edit_category.html": nil,
	"404.html":           nil,
	"500.html":           nil,
}

// TemplateRegistry is a custom html/template renderer for Echo framework
type TemplateRegistry struct {
	templates map[string]*template.Template
	extraData map[string]string
}

// Render e.Renderer interface
func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return errors.New("Template not found -> " + name)
	}

	values, ok := data.(map[string]interface{})
	if !ok || values == nil {
		values = map[string]interface{}{}
	}

	// inject more app data information. E.g. appVersion
	for k, v := range t.extraData {
		values[k] = v
	}
	if _, ok := values["baseData"]; !ok {
		values["baseData"] = model.BaseData{}
	}
	if _, ok := values["errors"]; !ok {
		values["errors"] = map[string]string{}
	}
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
		values["csrf"] = token
	}

	return tmpl.ExecuteTemplate(w, "base.html", values)
}

// New function
func New(tmplDir fs.FS, extraData map[string]string, secret []byte) *echo.Echo {
	e := echo.New()

	cookieStore := sessions.NewCookieStore(secret)
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(cookieStore))

	// read html template file to string
	tmplBaseString, err := util.StringFromEmbedFile(tmplDir, "base.html")
	if err != nil {
		log.Fatal(err)
	}

	// create template list
	funcs := template.FuncMap{
		"StringsJoin": strings.Join,
	}
	templates := make(map[string]*template.Template)
	for page, partials := range pages {
		content := tmplBaseString
		for _, name := range append(partials, page) {
			s, err := util.StringFromEmbedFile(tmplDir, name)
			if err != nil {
				log.Fatal(err)
			}
			content += s
		}
		templates[page] = template.Must(template.New(strings.TrimSuffix(page, ".html")).Funcs(funcs).Parse(content))
	}

	lvl, err := util.ParseLogLevel(util.LookupEnvOrString(util.LogLevel, "INFO"))
	if err != nil {
		log.Fatal(err)
	}
	if util.Debug {
		lvl = log.DEBUG
	}
	logConfig := middleware.DefaultLoggerConfig
	logConfig.Skipper = func(c echo.Context) bool {
		resp := c.Response()
		if resp.Status >= 500 && lvl > log.ERROR { // do not log if response is 5XX but log level is higher than ERROR
			return true
		} else if resp.Status >= 400 && resp.Status < 500 && lvl > log.WARN { // do not log if response is 4XX but log level is higher than WARN
			return true
		} else if resp.Status < 400 && lvl > log.DEBUG { // do not log if log level is higher than DEBUG
			return true
		}
		return false
	}

	log.SetLevel(lvl)
	e.Logger.SetLevel(lvl)
	e.Debug = util.Debug
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.LoggerWithConfig(logConfig))
	e.Use(middleware.Recover())
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "form:csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.HideBanner = true
	e.HidePort = lvl > log.INFO // hide the port output if the log level is higher than INFO
	e.Validator = NewValidator()
	e.Renderer = &TemplateRegistry{
		templates: templates,
		extraData: extraData,
	}

	return e
}
