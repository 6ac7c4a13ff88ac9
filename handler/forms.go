package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flavorvault/flavorvault/model"
	"github.com/flavorvault/flavorvault/router"
)

type registerForm struct {
	Username        string `form:"username" validate:"required,alphanum,min=5,max=15"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=5,eqfield=ConfirmPassword"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type recipeForm struct {
	CategoryID        string `form:"category_id" validate:"required"`
	RecipeName        string `form:"recipe_name" validate:"required,max=100"`
	RecipeDescription string `form:"recipe_description" validate:"required,max=2000"`
	DateAdded         string `form:"date_added"`
	Healthy           string `form:"healthy"`
}

type categoryForm struct {
	CategoryName string `form:"category_name" validate:"required,max=50"`
}

// bindForm binds the posted form and runs its validation rules. Any failure
// is reported as router.FormErrors so handlers can re-render the form.
func bindForm(c echo.Context, form interface{}, normalize func()) router.FormErrors {
	if err := c.Bind(form); err != nil {
		return router.FormErrors{"form": "Invalid form submission."}
	}
	if normalize != nil {
		normalize()
	}
	if err := c.Validate(form); err != nil {
		var formErrors router.FormErrors
		if errors.As(err, &formErrors) {
			return formErrors
		}
		return router.FormErrors{"form": "Invalid form submission."}
	}
	return nil
}

func (f *registerForm) normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

// bcrypt only hashes passwords up to this many bytes
const maxPasswordBytes = 72

// check validates what struct tags cannot express
func (f *registerForm) check() router.FormErrors {
	if len(f.Password) > maxPasswordBytes {
		return router.FormErrors{"password": PasswordTooLongMsg}
	}
	return nil
}

func (f *recipeForm) normalize() {
	f.RecipeName = strings.TrimSpace(f.RecipeName)
	f.RecipeDescription = strings.TrimSpace(f.RecipeDescription)
	f.DateAdded = strings.TrimSpace(f.DateAdded)
}

// check validates what struct tags cannot express
func (f *recipeForm) check() router.FormErrors {
	if f.DateAdded == "" {
		return nil
	}
	if _, err := time.Parse(model.DateAddedLayout, f.DateAdded); err != nil {
		return router.FormErrors{"date_added": InvalidDateMsg}
	}
	return nil
}

func (f *recipeForm) apply(recipe *model.Recipe) {
	recipe.CategoryID = f.CategoryID
	recipe.RecipeName = f.RecipeName
	recipe.RecipeDescription = f.RecipeDescription
	recipe.DateAdded = f.DateAdded
	if recipe.DateAdded == "" {
		recipe.DateAdded = time.Now().UTC().Format(model.DateAddedLayout)
	}
	recipe.Healthy = f.Healthy != ""
}

func recipeFormFrom(recipe model.Recipe) recipeForm {
	form := recipeForm{
		CategoryID:        recipe.CategoryID,
		RecipeName:        recipe.RecipeName,
		RecipeDescription: recipe.RecipeDescription,
		DateAdded:         recipe.DateAdded,
	}
	if recipe.Healthy {
		form.Healthy = "on"
	}
	return form
}

func (f *categoryForm) normalize() {
	f.CategoryName = strings.TrimSpace(f.CategoryName)
}
