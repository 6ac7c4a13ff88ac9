package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rs/xid"

	"github.com/flavorvault/flavorvault/model"
	"github.com/flavorvault/flavorvault/store"
)

// Categories handler
func Categories(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := storeContext(c)
		defer cancel()

		categories, err := db.GetCategories(ctx)
		if err != nil {
			return storeUnavailable(c, err)
		}

		return render(c, http.StatusOK, "categories.html", "categories", map[string]interface{}{
			"categories": categories,
		})
	}
}

// AddCategoryPage handler
func AddCategoryPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, http.StatusOK, "add_category.html", "categories", map[string]interface{}{
			"form":   categoryForm{},
			"errors": map[string]string{},
		})
	}
}

// AddCategory handler
func AddCategory(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		form := new(categoryForm)
		if formErrors := bindForm(c, form, form.normalize); formErrors != nil {
			addFlash(c, FormErrorMsg)
			return render(c, http.StatusUnprocessableEntity, "add_category.html", "categories", map[string]interface{}{
				"form":   form,
				"errors": formErrors,
			})
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		category := model.Category{
			ID:           xid.New().String(),
			CategoryName: form.CategoryName,
		}
		err := db.CreateCategory(ctx, category)
		if errors.Is(err, store.ErrDuplicate) {
			return redirect(c, "/add_category", CategoryExistsErrorMsg)
		}
		if err != nil {
			return storeUnavailable(c, err)
		}

		log.Infof("Created category %s (%s)", category.ID, category.CategoryName)
		return redirect(c, "/categories", CategoryAddedMsg)
	}
}

// EditCategoryPage handler
func EditCategoryPage(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := storeContext(c)
		defer cancel()

		category, err := db.GetCategoryByID(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "/categories", CategoryNotFoundMsg)
		}
		if err != nil {
			return storeUnavailable(c, err)
		}

		return render(c, http.StatusOK, "edit_category.html", "categories", map[string]interface{}{
			"categoryID": category.ID,
			"form":       categoryForm{CategoryName: category.CategoryName},
			"errors":     map[string]string{},
		})
	}
}

// EditCategory handler renames a category
func EditCategory(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		categoryID := c.Param("id")

		form := new(categoryForm)
		if formErrors := bindForm(c, form, form.normalize); formErrors != nil {
			addFlash(c, FormErrorMsg)
			return render(c, http.StatusUnprocessableEntity, "edit_category.html", "categories", map[string]interface{}{
				"categoryID": categoryID,
				"form":       form,
				"errors":     formErrors,
			})
		}

		ctx, cancel := storeContext(c)
		defer cancel()

		category := model.Category{ID: categoryID, CategoryName: form.CategoryName}
		err := db.SaveCategory(ctx, category)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return notFound(c, "/categories", CategoryNotFoundMsg)
		case errors.Is(err, store.ErrDuplicate):
			return redirect(c, "/edit_category/"+categoryID, CategoryExistsErrorMsg)
		case err != nil:
			return storeUnavailable(c, err)
		}

		log.Infof("Updated category %s to %s", category.ID, category.CategoryName)
		return redirect(c, "/categories", CategoryUpdatedMsg)
	}
}

// DeleteCategory handler. Categories still used by recipes are kept.
func DeleteCategory(db store.IStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := storeContext(c)
		defer cancel()

		categoryID := c.Param("id")
		err := db.DeleteCategory(ctx, categoryID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return notFound(c, "/categories", CategoryNotFoundMsg)
		case errors.Is(err, store.ErrInUse):
			return redirect(c, "/categories", CategoryDeleteErrorMsg)
		case err != nil:
			return storeUnavailable(c, err)
		}

		log.Infof("Removed category %s", categoryID)
		return redirect(c, "/categories", CategoryDeletedMsg)
	}
}
