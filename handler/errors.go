package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/flavorvault/flavorvault/util"
)

// storeContext bounds a persistence call by the request lifetime and the store timeout
func storeContext(c echo.Context) (context.Context, context.CancelFunc) {
	timeout := util.StoreTimeout
	if timeout <= 0 {
		timeout = util.DefaultStoreTimeout
	}
	return context.WithTimeout(c.Request().Context(), timeout)
}

// unauthenticated: no identity for an action that needs one
func unauthenticated(c echo.Context, msg string) error {
	return redirect(c, "/login", msg)
}

// forbidden: the identity may not perform the action
func forbidden(c echo.Context, msg string) error {
	log.Warnf("Rejected %s %s for %s", c.Request().Method, c.Request().URL.Path, baseData(c, "").CurrentUser)
	return redirect(c, "/get_recipes", msg)
}

// notFound: the record addressed by the url does not exist
func notFound(c echo.Context, listPath string, msg string) error {
	return redirect(c, listPath, msg)
}

// storeUnavailable logs the failure and shows the user a generic retry message
func storeUnavailable(c echo.Context, err error) error {
	log.Errorf("Database error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return redirect(c, "/get_recipes", DBErrorMsg)
}

// ErrorPages renders the not found and internal error pages inside the
// layout, never the error detail itself
func ErrorPages(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		var page string
		switch {
		case code == http.StatusNotFound:
			page = "404.html"
		case code >= http.StatusInternalServerError:
			log.Errorf("Unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
			page = "500.html"
		default:
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = render(c, code, page, "", nil)
		}
		if err != nil {
			log.Error("Cannot render error page: ", err)
		}
	}
}
