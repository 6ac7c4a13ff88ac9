package handler

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/flavorvault/flavorvault/model"
)

const (
	sessionName = "session"
	identityKey = "identity"
)

func getSession(c echo.Context) *sessions.Session {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		// a cookie signed with another secret decodes to a fresh session
		log.Debug("Cannot decode session: ", err)
	}
	return sess
}

func saveSession(c echo.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("Cannot save session: ", err)
	}
}

// LoadIdentity attaches the identity stored in the session cookie to the request
func LoadIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sess := getSession(c); sess != nil {
			username, _ := sess.Values["username"].(string)
			role, _ := sess.Values["role"].(string)
			if username != "" {
				c.Set(identityKey, &model.Identity{Username: username, Role: model.Role(role)})
			}
		}
		return next(c)
	}
}

// currentIdentity returns the logged in user, nil when anonymous
func currentIdentity(c echo.Context) *model.Identity {
	identity, _ := c.Get(identityKey).(*model.Identity)
	return identity
}

// setIdentity logs the user in for this and the following requests
func setIdentity(c echo.Context, user model.User) {
	identity := &model.Identity{Username: user.Username, Role: user.Role}
	c.Set(identityKey, identity)
	if sess := getSession(c); sess != nil {
		sess.Values["username"] = identity.Username
		sess.Values["role"] = string(identity.Role)
	}
}

// clearIdentity to remove current session
func clearIdentity(c echo.Context) {
	c.Set(identityKey, nil)
	if sess := getSession(c); sess != nil {
		delete(sess.Values, "username")
		delete(sess.Values, "role")
	}
}

func addFlash(c echo.Context, msg string) {
	if sess := getSession(c); sess != nil {
		sess.AddFlash(msg)
	}
}

func baseData(c echo.Context, active string) model.BaseData {
	data := model.BaseData{Active: active}
	if identity := currentIdentity(c); identity != nil {
		data.CurrentUser = identity.Username
		data.Admin = identity.IsAdmin()
	}
	return data
}

// render draws a page inside the base layout, consuming pending flashes
func render(c echo.Context, code int, name string, active string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["baseData"] = baseData(c, active)
	data["identity"] = currentIdentity(c)
	if sess := getSession(c); sess != nil {
		data["flashes"] = sess.Flashes()
		saveSession(c)
	}
	return c.Render(code, name, data)
}

// redirect flashes the messages and persists the session before redirecting
func redirect(c echo.Context, location string, flashes ...string) error {
	for _, msg := range flashes {
		addFlash(c, msg)
	}
	saveSession(c)
	return c.Redirect(http.StatusFound, location)
}
