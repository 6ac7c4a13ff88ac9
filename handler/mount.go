package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/flavorvault/flavorvault/emailer"
	"github.com/flavorvault/flavorvault/store"
)

// Mount registers every page of the application on app
func Mount(app *echo.Echo, db store.IStore, mailer emailer.Emailer) {
	app.Use(LoadIdentity)
	app.HTTPErrorHandler = ErrorPages(app)

	recipeLogin := RequireLogin(RecipeAccessErrorMsg)

	app.GET("/", GetRecipes(db))
	app.GET("/get_recipes", GetRecipes(db))
	app.GET("/recipe/:id", ViewRecipe(db))

	app.GET("/register", RegisterPage())
	app.POST("/register", Register(db, mailer))
	app.GET("/login", LoginPage())
	app.POST("/login", Login(db))
	app.GET("/logout", Logout())
	app.GET("/profile/:username", Profile(db), RequireLogin(ProfileAccessErrorMsg))

	app.GET("/add_recipe", AddRecipePage(db), recipeLogin)
	app.POST("/add_recipe", AddRecipe(db), recipeLogin)
	app.GET("/edit_recipe/:id", EditRecipePage(db), recipeLogin)
	app.POST("/edit_recipe/:id", EditRecipe(db), recipeLogin)
	app.GET("/delete_recipe/:id", DeleteRecipe(db), recipeLogin)

	app.GET("/categories", Categories(db), RequireAdmin)
	app.GET("/add_category", AddCategoryPage(), RequireAdmin)
	app.POST("/add_category", AddCategory(db), RequireAdmin)
	app.GET("/edit_category/:id", EditCategoryPage(db), RequireAdmin)
	app.POST("/edit_category/:id", EditCategory(db), RequireAdmin)
	app.GET("/delete_category/:id", DeleteCategory(db), RequireAdmin)
}
