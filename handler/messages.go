package handler

// flash messages shown to the user
const (
	UsernameExistsMsg      = "Username already exists"
	RegistrationSuccessMsg = "Registration Successful!"
	FormErrorMsg           = "Please correct the errors in the form."
	DBErrorMsg             = "An error occurred while processing your request. Please try again."
	RecipeAddedMsg         = "Recipe Successfully Added"
	RecipeUpdatedMsg       = "Recipe Successfully Updated"
	RecipeDeletedMsg       = "Recipe Successfully Deleted"
	CategoryAddedMsg       = "Category Successfully Added"
	CategoryUpdatedMsg     = "Category Successfully Updated"
	CategoryDeletedMsg     = "Category Successfully Deleted"
	LoginSuccessMsg        = "Welcome, %s"
	LoginErrorMsg          = "Incorrect Username and/or Password"
	LogoutMsg              = "You have been logged out"
	LoginRequiredMsg       = "Please log in to continue"
	ProfileAccessErrorMsg  = "Please log in to view profiles"
	RecipeAccessErrorMsg   = "Please log in to add recipes"
	CategoryDeleteErrorMsg = "Cannot delete category that contains recipes"
	CategoryNotFoundMsg    = "Category not found"
	CategoryExistsErrorMsg = "Category already exists"
	InvalidCategoryMsg     = "Please choose a valid category."
	AdminAccessErrorMsg    = "This page is accessible only to administrators"
	UserNotFoundMsg        = "User not found"
	RecipeNotFoundMsg      = "Recipe not found"
	RecipeEditErrorMsg     = "You can only edit your own recipes!"
	RecipeDeleteErrorMsg   = "You can only delete your own recipes!"
	InvalidDateMsg         = "Use the format 02 January, 2006."
	PasswordTooLongMsg     = "Must be at most 72 bytes long."
)
