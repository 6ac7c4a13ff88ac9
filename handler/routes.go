package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/flavorvault/flavorvault/emailer"
	"github.com/flavorvault/flavorvault/model"
	"github.com/flavorvault/flavorvault/store"
	"github.com/flavorvault/flavorvault/util"
)

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username)
}

// absoluteURL builds a link for use outside the browser, e.g. in emails and QR codes
func absoluteURL(c echo.Context, path string) string {
	if util.BaseURL != "" {
		return util.BaseURL + path
	}
	return c.Scheme() + "://" + c.Request().Host + path
}

// buildRecipeData joins each recipe with the name of its category
func buildRecipeData(recipes []model.Recipe, categories []model.Category) []model.RecipeData {
	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.CategoryName
	}
	recipeDataList := make([]model.RecipeData, 0, len(recipes))
	for i := range recipes {
		recipeDataList = append(recipeDataList, model.RecipeData{
			Recipe:       &recipes[i],
			CategoryName: names[recipes[i].CategoryID],
		})
	}
	return recipeDataList
}

// GetRecipes handler lists every recipe
func GetRecipes(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := storeContext(c)
		defer cancel()

		recipes, err := db.GetRecipes(ctx)
		var categories []model.Category
		if err == nil {
			categories, err = db.GetCategories(ctx)
		}
		if err != nil {
			// this is where storage failures redirect to, so render instead
			log.Error("Cannot fetch recipes from database: ", err)
			addFlash(c, DBErrorMsg)
			return render(c, http.StatusServiceUnavailable, "recipes.html", "recipes", map[string]interface{}{
				"recipeDataList": []model.RecipeData{},
			})
		}

		return render(c, http.StatusOK, "recipes.html", "recipes", map[string]interface{}{
			"recipeDataList": buildRecipeData(recipes, categories),
		})
	}
}

// ViewRecipe handler shows one recipe with a QR code to share it
func ViewRecipe(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := storeContext(c)
		defer cancel()

		recipe, err := db.GetRecipeByID(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "/get_recipes", RecipeNotFoundMsg)
		}
		if err != nil {
			return storeUnavailable(c, err)
		}

		recipeData := model.RecipeData{Recipe: &recipe}
		category, err := db.GetCategoryByID(ctx, recipe.CategoryID)
		if err == nil {
			recipeData.CategoryName = category.CategoryName
		} else if !errors.Is(err, store.ErrNotFound) {
			return storeUnavailable(c, err)
		}

		qrCode, err := util.QRCodeDataURI(absoluteURL(c, "/recipe/"+recipe.ID))
		if err != nil {
			log.Warn("Cannot generate QR code: ", err)
		}
		// generated by us, safe to use as an image source
		recipeData.QRCode = template.URL(qrCode)

		return render(c, http.StatusOK, "recipe.html", "recipes", map[string]interface{}{
			"recipeData": recipeData,
		})
	}
}

// RegisterPage handler
func RegisterPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity := currentIdentity(c); identity != nil {
			return redirect(c, profilePath(identity.Username))
		}
		return render(c, http.StatusOK, "register.html", "register", map[string]interface{}{
			"form":   registerForm{},
			"errors": map[string]string{},
		})
	}
}

// Register handler creates the account and logs the new user in
func Register(db store.IStore, mailer emailer.Emailer) echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity := currentIdentity(c); identity != nil {
			return redirect(c, profilePath(identity.Username))
		}

		form := new(registerForm)
		formErrors := bindForm(c, form, form.normalize)
		if formErrors == nil {
			formErrors = form.check()
		}
		if formErrors != nil {
			addFlash(c, FormErrorMsg)
			form.Password, form.ConfirmPassword = "", ""
			return render(c, http.StatusUnprocessableEntity, "register.html", "register", map[string]interface{}{
				"form":   form,
				"errors": formErrors,
			})
		}

		hash, err := util.HashPassword(form.Password)
		if err != nil {
			log.Error("Cannot hash password: ", err)
			return redirect(c, "/register", DBErrorMsg)
		}
		user := model.User{
			Username:     model.NormalizeUsername(form.Username),
			Email:        form.Email,
			PasswordHash: hash,
			Role:         model.RoleMember,
			CreatedAt:    time.Now().UTC(),
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		err = db.CreateUser(ctx, user)
		if errors.Is(err, store.ErrDuplicate) {
			return redirect(c, "/register", UsernameExistsMsg)
		}
		if err != nil {
			return storeUnavailable(c, err)
		}
		log.Infof("Registered user %s", user.Username)

		if mailer != nil && user.Email != "" {
			go sendWelcome(mailer, user, absoluteURL(c, "/add_recipe"))
		}

		setIdentity(c, user)
		return redirect(c, profilePath(user.Username), RegistrationSuccessMsg)
	}
}

func sendWelcome(mailer emailer.Emailer, user model.User, link string) {
	subject, content, err := emailer.Welcome(user.Username, link)
	if err != nil {
		log.Error("Cannot build welcome email: ", err)
		return
	}
	if err := mailer.Send(user.Username, user.Email, subject, content); err != nil {
		log.Warnf("Cannot send welcome email to %s: %v", user.Username, err)
	}
}

// LoginPage handler
func LoginPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity := currentIdentity(c); identity != nil {
			return redirect(c, profilePath(identity.Username))
		}
		return render(c, http.StatusOK, "login.html", "login", map[string]interface{}{
			"form": loginForm{},
		})
	}
}

// Login handler. Unknown users and wrong passwords get the same message.
func Login(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity := currentIdentity(c); identity != nil {
			return redirect(c, profilePath(identity.Username))
		}

		form := new(loginForm)
		if formErrors := bindForm(c, form, nil); formErrors != nil {
			return redirect(c, "/login", LoginErrorMsg)
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		user, err := db.GetUserByName(ctx, form.Username)
		if errors.Is(err, store.ErrNotFound) {
			log.Infof("Login failed for unknown user %q", form.Username)
			return redirect(c, "/login", LoginErrorMsg)
		}
		if err != nil {
			return storeUnavailable(c, err)
		}

		match, err := util.VerifyHash(user.PasswordHash, form.Password)
		if err != nil {
			log.Error("Cannot verify password hash: ", err)
		}
		if !match {
			log.Infof("Login failed for user %s", user.Username)
			return redirect(c, "/login", LoginErrorMsg)
		}

		setIdentity(c, user)
		log.Infof("Logged in user %s", user.Username)
		return redirect(c, profilePath(user.Username), fmt.Sprintf(LoginSuccessMsg, user.Username))
	}
}

// Logout handler
func Logout() echo.HandlerFunc {
	return func(c echo.Context) error {
		clearIdentity(c)
		return redirect(c, "/login", LogoutMsg)
	}
}

// Profile handler
func Profile(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := currentIdentity(c)
		username := model.NormalizeUsername(c.Param("username"))

		ctx, cancel := storeContext(c)
		defer cancel()

		user, err := db.GetUserByName(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			if username == model.NormalizeUsername(identity.Username) {
				// the account behind this session is gone
				clearIdentity(c)
				return redirect(c, "/login", UserNotFoundMsg)
			}
			return notFound(c, "/get_recipes", UserNotFoundMsg)
		}
		if err != nil {
			return storeUnavailable(c, err)
		}

		recipes, err := db.GetRecipesByUser(ctx, user.Username)
		if err != nil {
			return storeUnavailable(c, err)
		}
		categories, err := db.GetCategories(ctx)
		if err != nil {
			return storeUnavailable(c, err)
		}

		return render(c, http.StatusOK, "profile.html", "profile", map[string]interface{}{
			"username":       user.Username,
			"recipeDataList": buildRecipeData(recipes, categories),
		})
	}
}
