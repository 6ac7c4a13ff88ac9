package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rs/xid"

	"github.com/flavorvault/flavorvault/model"
	"github.com/flavorvault/flavorvault/router"
	"github.com/flavorvault/flavorvault/store"
	"github.com/flavorvault/flavorvault/telegram"
)

func categoryName(categories []model.Category, categoryID string) string {
	for _, category := range categories {
		if category.ID == categoryID {
			return category.CategoryName
		}
	}
	return ""
}

// AddRecipePage handler
func AddRecipePage(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := storeContext(c)
		defer cancel()

		categories, err := db.GetCategories(ctx)
		if err != nil {
			return storeUnavailable(c, err)
		}

		return render(c, http.StatusOK, "add_recipe.html", "add_recipe", map[string]interface{}{
			"categories": categories,
			"form":       recipeForm{DateAdded: time.Now().UTC().Format(model.DateAddedLayout)},
			"errors":     map[string]string{},
		})
	}
}

// AddRecipe handler
func AddRecipe(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := storeContext(c)
		defer cancel()

		categories, err := db.GetCategories(ctx)
		if err != nil {
			return storeUnavailable(c, err)
		}

		form := new(recipeForm)
		formErrors := bindForm(c, form, form.normalize)
		if formErrors == nil {
			formErrors = form.check()
		}
		if formErrors == nil {
			recipe := model.Recipe{
				ID:        xid.New().String(),
				CreatedBy: currentIdentity(c).Username,
				CreatedAt: time.Now().UTC(),
			}
			form.apply(&recipe)
			recipe.UpdatedAt = recipe.CreatedAt

			err = db.CreateRecipe(ctx, recipe)
			if err == nil {
				log.Infof("Created recipe %s (%s) for %s", recipe.ID, recipe.RecipeName, recipe.CreatedBy)
				go announce(recipe, categoryName(categories, recipe.CategoryID), absoluteURL(c, "/recipe/"+recipe.ID))
				return redirect(c, "/get_recipes", RecipeAddedMsg)
			}
			if !errors.Is(err, store.ErrInvalidReference) {
				return storeUnavailable(c, err)
			}
			formErrors = router.FormErrors{"category_id": InvalidCategoryMsg}
		}

		addFlash(c, FormErrorMsg)
		return render(c, http.StatusUnprocessableEntity, "add_recipe.html", "add_recipe", map[string]interface{}{
			"categories": categories,
			"form":       form,
			"errors":     formErrors,
		})
	}
}

func announce(recipe model.Recipe, categoryName string, link string) {
	if err := telegram.AnnounceRecipe(recipe, categoryName, link); err != nil {
		log.Warn("Cannot announce recipe on telegram: ", err)
	}
}

// loadOwnedRecipe fetches the recipe in the url and checks the current user
// may change it. On failure the returned error is the response to send.
func loadOwnedRecipe(c echo.Context, db store.IStore, denyMsg string) (model.Recipe, bool, error) {
	ctx, cancel := storeContext(c)
	defer cancel()

	recipe, err := db.GetRecipeByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return recipe, false, notFound(c, "/get_recipes", RecipeNotFoundMsg)
	}
	if err != nil {
		return recipe, false, storeUnavailable(c, err)
	}
	if !currentIdentity(c).CanModify(recipe.CreatedBy) {
		return recipe, false, forbidden(c, denyMsg)
	}
	return recipe, true, nil
}

// EditRecipePage handler
func EditRecipePage(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipe, ok, err := loadOwnedRecipe(c, db, RecipeEditErrorMsg)
		if !ok {
			return err
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		categories, err := db.GetCategories(ctx)
		if err != nil {
			return storeUnavailable(c, err)
		}

		return render(c, http.StatusOK, "edit_recipe.html", "", map[string]interface{}{
			"recipeID":   recipe.ID,
			"categories": categories,
			"form":       recipeFormFrom(recipe),
			"errors":     map[string]string{},
		})
	}
}

// EditRecipe handler updates a recipe owned by the current user
func EditRecipe(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipe, ok, err := loadOwnedRecipe(c, db, RecipeEditErrorMsg)
		if !ok {
			return err
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		form := new(recipeForm)
		formErrors := bindForm(c, form, form.normalize)
		if formErrors == nil {
			formErrors = form.check()
		}
		if formErrors == nil {
			form.apply(&recipe)
			recipe.UpdatedAt = time.Now().UTC()

			err = db.SaveRecipe(ctx, recipe)
			if err == nil {
				log.Infof("Updated recipe %s by %s", recipe.ID, currentIdentity(c).Username)
				return redirect(c, "/get_recipes", RecipeUpdatedMsg)
			}
			if errors.Is(err, store.ErrNotFound) {
				return notFound(c, "/get_recipes", RecipeNotFoundMsg)
			}
			if !errors.Is(err, store.ErrInvalidReference) {
				return storeUnavailable(c, err)
			}
			formErrors = router.FormErrors{"category_id": InvalidCategoryMsg}
		}

		categories, err := db.GetCategories(ctx)
		if err != nil {
			return storeUnavailable(c, err)
		}
		addFlash(c, FormErrorMsg)
		return render(c, http.StatusUnprocessableEntity, "edit_recipe.html", "", map[string]interface{}{
			"recipeID":   recipe.ID,
			"categories": categories,
			"form":       form,
			"errors":     formErrors,
		})
	}
}

// DeleteRecipe handler
func DeleteRecipe(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipe, ok, err := loadOwnedRecipe(c, db, RecipeDeleteErrorMsg)
		if !ok {
			return err
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		err = db.DeleteRecipe(ctx, recipe.ID)
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "/get_recipes", RecipeNotFoundMsg)
		}
		if err != nil {
			return storeUnavailable(c, err)
		}

		log.Infof("Removed recipe %s by %s", recipe.ID, currentIdentity(c).Username)
		return redirect(c, "/get_recipes", RecipeDeletedMsg)
	}
}
