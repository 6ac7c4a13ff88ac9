package store

import (
	"context"
	"errors"

	"github.com/flavorvault/flavorvault/model"
)

var (
	// ErrNotFound is returned when no record matches the lookup
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write would break a uniqueness constraint
	ErrDuplicate = errors.New("record already exists")
	// ErrInUse is returned when deleting a category that recipes still reference
	ErrInUse = errors.New("record is still referenced")
	// ErrInvalidReference is returned when a recipe points at a missing category
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// IStore is the persistence gateway. Any error other than the sentinels above
// means the storage backend is unavailable.
type IStore interface {
	Init() error
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByName(ctx context.Context, username string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) error
	GetRecipes(ctx context.Context) ([]model.Recipe, error)
	GetRecipesByUser(ctx context.Context, username string) ([]model.Recipe, error)
	GetRecipeByID(ctx context.Context, recipeID string) (model.Recipe, error)
	CreateRecipe(ctx context.Context, recipe model.Recipe) error
	SaveRecipe(ctx context.Context, recipe model.Recipe) error
	DeleteRecipe(ctx context.Context, recipeID string) error
	CountRecipesByCategory(ctx context.Context, categoryID string) (int, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (model.Category, error)
	CreateCategory(ctx context.Context, category model.Category) error
	SaveCategory(ctx context.Context, category model.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}
