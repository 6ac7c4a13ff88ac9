package jsondb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sdomino/scribble"

	"github.com/flavorvault/flavorvault/model"
	"github.com/flavorvault/flavorvault/store"
	"github.com/flavorvault/flavorvault/util"
)

const (
	usersCollection      = "users"
	recipesCollection    = "recipes"
	categoriesCollection = "categories"
)

type JsonDB struct {
	conn   *scribble.Driver
	dbPath string

	// mu serializes every check-then-write sequence so uniqueness and
	// category references hold within this process. Readers take it shared
	// so they never see a record scribble is still writing.
	mu sync.RWMutex
}

// New returns a new pointer JsonDB
func New(dbPath string) (*JsonDB, error) {
	conn, err := scribble.New(dbPath, nil)
	if err != nil {
		return nil, err
	}
	ans := JsonDB{
		conn:   conn,
		dbPath: dbPath,
	}
	return &ans, nil
}

func (o *JsonDB) Init() error {
	// create directories if they do not exist
	for _, collection := range []string{usersCollection, recipesCollection, categoriesCollection} {
		collectionPath := path.Join(o.dbPath, collection)
		if _, err := os.Stat(collectionPath); os.IsNotExist(err) {
			if err := os.MkdirAll(collectionPath, os.ModePerm); err != nil {
				return err
			}
		}
	}

	// admin account
	username := model.NormalizeUsername(util.LookupEnvOrString(util.UsernameEnvVar, util.DefaultUsername))
	if _, err := o.GetUserByName(context.Background(), username); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	user := model.User{
		Username:     username,
		Role:         model.RoleAdmin,
		PasswordHash: util.LookupEnvOrString(util.PasswordHashEnvVar, ""),
		CreatedAt:    time.Now().UTC(),
	}
	if user.PasswordHash == "" {
		plaintext := util.LookupEnvOrString(util.PasswordEnvVar, util.DefaultPassword)
		hash, err := util.HashPassword(plaintext)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	return o.CreateUser(context.Background(), user)
}

// validResource rejects names that scribble would resolve outside a collection
func validResource(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

func (o *JsonDB) read(collection, resource string, v interface{}) error {
	if !validResource(resource) {
		return store.ErrNotFound
	}
	if err := o.conn.Read(collection, resource, v); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

// GetUsers func to get all users from the database
func (o *JsonDB) GetUsers(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	var users []model.User
	results, err := o.conn.ReadAll(usersCollection)
	if err != nil {
		return users, err
	}
	for _, i := range results {
		user := model.User{}
		if err := json.Unmarshal([]byte(i), &user); err != nil {
			return users, fmt.Errorf("cannot decode user json structure: %v", err)
		}
		users = append(users, user)
	}
	return users, nil
}

// GetUserByName func to get single user from the database
func (o *JsonDB) GetUserByName(ctx context.Context, username string) (model.User, error) {
	user := model.User{}
	if err := ctx.Err(); err != nil {
		return user, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	if err := o.read(usersCollection, model.NormalizeUsername(username), &user); err != nil {
		return user, err
	}
	return user, nil
}

// CreateUser stores a new user keyed by its lowercase username
func (o *JsonDB) CreateUser(ctx context.Context, user model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	user.Username = model.NormalizeUsername(user.Username)
	if !validResource(user.Username) {
		return fmt.Errorf("invalid username %q", user.Username)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	existing := model.User{}
	err := o.read(usersCollection, user.Username, &existing)
	if err == nil {
		return store.ErrDuplicate
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return o.conn.Write(usersCollection, user.Username, user)
}

func (o *JsonDB) readRecipes() ([]model.Recipe, error) {
	var recipes []model.Recipe
	records, err := o.conn.ReadAll(recipesCollection)
	if err != nil {
		return recipes, err
	}
	for _, f := range records {
		recipe := model.Recipe{}
		if err := json.Unmarshal([]byte(f), &recipe); err != nil {
			return recipes, fmt.Errorf("cannot decode recipe json structure: %v", err)
		}
		recipes = append(recipes, recipe)
	}
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.Before(recipes[j].CreatedAt)
	})
	return recipes, nil
}

func (o *JsonDB) GetRecipes(ctx context.Context) ([]model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.readRecipes()
}

func (o *JsonDB) GetRecipesByUser(ctx context.Context, username string) ([]model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	all, err := o.readRecipes()
	if err != nil {
		return nil, err
	}
	var recipes []model.Recipe
	for _, recipe := range all {
		if strings.EqualFold(recipe.CreatedBy, username) {
			recipes = append(recipes, recipe)
		}
	}
	return recipes, nil
}

func (o *JsonDB) GetRecipeByID(ctx context.Context, recipeID string) (model.Recipe, error) {
	recipe := model.Recipe{}
	if err := ctx.Err(); err != nil {
		return recipe, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	return recipe, o.read(recipesCollection, recipeID, &recipe)
}

func (o *JsonDB) CreateRecipe(ctx context.Context, recipe model.Recipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validResource(recipe.ID) {
		return fmt.Errorf("invalid recipe id %q", recipe.ID)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.checkCategory(recipe.CategoryID); err != nil {
		return err
	}
	existing := model.Recipe{}
	if err := o.read(recipesCollection, recipe.ID, &existing); err == nil {
		return store.ErrDuplicate
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return o.conn.Write(recipesCollection, recipe.ID, recipe)
}

func (o *JsonDB) SaveRecipe(ctx context.Context, recipe model.Recipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	existing := model.Recipe{}
	if err := o.read(recipesCollection, recipe.ID, &existing); err != nil {
		return err
	}
	if err := o.checkCategory(recipe.CategoryID); err != nil {
		return err
	}
	return o.conn.Write(recipesCollection, recipe.ID, recipe)
}

func (o *JsonDB) DeleteRecipe(ctx context.Context, recipeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	existing := model.Recipe{}
	if err := o.read(recipesCollection, recipeID, &existing); err != nil {
		return err
	}
	return o.conn.Delete(recipesCollection, recipeID)
}

func (o *JsonDB) CountRecipesByCategory(ctx context.Context, categoryID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.countRecipes(categoryID)
}

func (o *JsonDB) countRecipes(categoryID string) (int, error) {
	recipes, err := o.readRecipes()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, recipe := range recipes {
		if recipe.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// checkCategory must be called with o.mu held
func (o *JsonDB) checkCategory(categoryID string) error {
	category := model.Category{}
	err := o.read(categoriesCollection, categoryID, &category)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrInvalidReference
	}
	return err
}

func (o *JsonDB) readCategories() ([]model.Category, error) {
	var categories []model.Category
	records, err := o.conn.ReadAll(categoriesCollection)
	if err != nil {
		return categories, err
	}
	for _, f := range records {
		category := model.Category{}
		if err := json.Unmarshal([]byte(f), &category); err != nil {
			return categories, fmt.Errorf("cannot decode category json structure: %v", err)
		}
		categories = append(categories, category)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].CategoryName) < strings.ToLower(categories[j].CategoryName)
	})
	return categories, nil
}

// GetCategories returns all categories sorted by name
func (o *JsonDB) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.readCategories()
}

func (o *JsonDB) GetCategoryByID(ctx context.Context, categoryID string) (model.Category, error) {
	category := model.Category{}
	if err := ctx.Err(); err != nil {
		return category, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	return category, o.read(categoriesCollection, categoryID, &category)
}

// nameTaken must be called with o.mu held
func (o *JsonDB) nameTaken(category model.Category) (bool, error) {
	categories, err := o.readCategories()
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c.ID != category.ID && strings.EqualFold(c.CategoryName, category.CategoryName) {
			return true, nil
		}
	}
	return false, nil
}

func (o *JsonDB) CreateCategory(ctx context.Context, category model.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validResource(category.ID) {
		return fmt.Errorf("invalid category id %q", category.ID)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	taken, err := o.nameTaken(category)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicate
	}
	return o.conn.Write(categoriesCollection, category.ID, category)
}

func (o *JsonDB) SaveCategory(ctx context.Context, category model.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	existing := model.Category{}
	if err := o.read(categoriesCollection, category.ID, &existing); err != nil {
		return err
	}
	taken, err := o.nameTaken(category)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicate
	}
	return o.conn.Write(categoriesCollection, category.ID, category)
}

// DeleteCategory removes a category unless a recipe still references it
func (o *JsonDB) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	existing := model.Category{}
	if err := o.read(categoriesCollection, categoryID, &existing); err != nil {
		return err
	}
	count, err := o.countRecipes(categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrInUse
	}
	return o.conn.Delete(categoriesCollection, categoryID)
}

var _ store.IStore = (*JsonDB)(nil)
