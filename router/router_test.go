package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorvault/flavorvault/templates"
)

type signupForm struct {
	Username        string `form:"username" validate:"required,alphanum,min=5,max=15"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=5,eqfield=ConfirmPassword"`
	ConfirmPassword string `form:"confirm_password"`
}

func TestValidateReportsFormFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&signupForm{
		Username:        "ab!",
		Email:           "not-an-email",
		Password:        "secret",
		ConfirmPassword: "secreT",
	})
	var formErrors FormErrors
	require.True(t, errors.As(err, &formErrors))

	assert.Equal(t, "Only letters and numbers are allowed.", formErrors["username"])
	assert.Equal(t, "Invalid email address.", formErrors["email"])
	assert.Equal(t, "Passwords must match.", formErrors["password"])
	assert.NotContains(t, formErrors, "confirm_password")
}

func TestValidateLengthMessages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&signupForm{Username: "abc", Email: "a@b.co", Password: "abc", ConfirmPassword: "abc"})
	var formErrors FormErrors
	require.True(t, errors.As(err, &formErrors))
	assert.Equal(t, "Must be at least 5 characters long.", formErrors["username"])
	assert.Equal(t, "Must be at least 5 characters long.", formErrors["password"])

	err = v.Validate(&signupForm{Username: "abcdefghijklmnop", Email: "a@b.co", Password: "secret", ConfirmPassword: "secret"})
	require.True(t, errors.As(err, &formErrors))
	assert.Equal(t, FormErrors{"username": "Must be at most 15 characters long."}, formErrors)

	assert.NoError(t, v.Validate(&signupForm{Username: "chefjane", Email: "jane@example.com", Password: "secret", ConfirmPassword: "secret"}))
}

func TestRenderUnknownTemplate(t *testing.T) {
	e := New(templates.FS, nil, []byte("0123456789abcdef0123456789abcdef"))
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := e.Renderer.Render(httptest.NewRecorder(), "nope.html", nil, c)
	assert.Error(t, err)
}
