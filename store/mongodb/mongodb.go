// Package mongodb provides a MongoDB storage backend for FlavorVault
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/flavorvault/flavorvault/model"
	"github.com/flavorvault/flavorvault/store"
	"github.com/flavorvault/flavorvault/util"
)

const (
	usersCollection      = "users"
	recipesCollection    = "recipes"
	categoriesCollection = "categories"
)

// case-insensitive comparison for category names
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// MongoDB - Representation of MongoDB database backend
type MongoDB struct {
	db *mongo.Database
}

// New connects to MongoDB and checks the connection
func New(uri string, database string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	ans := MongoDB{
		db: client.Database(database),
	}
	return &ans, nil
}

// Init creates the indexes and seeds the admin account
func (o *MongoDB) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := o.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("cannot create users index: %w", err)
	}
	if _, err := o.db.Collection(categoriesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category_name", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
	}); err != nil {
		return fmt.Errorf("cannot create categories index: %w", err)
	}
	if _, err := o.db.Collection(recipesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("cannot create recipes indexes: %w", err)
	}

	user := model.User{
		Username:     model.NormalizeUsername(util.LookupEnvOrString(util.UsernameEnvVar, util.DefaultUsername)),
		Role:         model.RoleAdmin,
		PasswordHash: util.LookupEnvOrString(util.PasswordHashEnvVar, ""),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := o.GetUserByName(ctx, user.Username); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if user.PasswordHash == "" {
		hash, err := util.HashPassword(util.LookupEnvOrString(util.PasswordEnvVar, util.DefaultPassword))
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	if err := o.CreateUser(ctx, user); err != nil && !errors.Is(err, store.ErrDuplicate) {
		return err
	}
	return nil
}

func findOne(ctx context.Context, coll *mongo.Collection, filter interface{}, v interface{}) error {
	err := coll.FindOne(ctx, filter).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func insertOne(ctx context.Context, coll *mongo.Collection, document interface{}) error {
	_, err := coll.InsertOne(ctx, document)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}

func replaceOne(ctx context.Context, coll *mongo.Collection, id string, document interface{}) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, document)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (o *MongoDB) GetUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	cursor, err := o.db.Collection(usersCollection).Find(ctx, bson.M{})
	if err != nil {
		return users, err
	}
	if err := cursor.All(ctx, &users); err != nil {
		return users, fmt.Errorf("cannot decode users: %w", err)
	}
	return users, nil
}

func (o *MongoDB) GetUserByName(ctx context.Context, username string) (model.User, error) {
	user := model.User{}
	return user, findOne(ctx, o.db.Collection(usersCollection), bson.M{"username": model.NormalizeUsername(username)}, &user)
}

func (o *MongoDB) CreateUser(ctx context.Context, user model.User) error {
	user.Username = model.NormalizeUsername(user.Username)
	return insertOne(ctx, o.db.Collection(usersCollection), user)
}

func (o *MongoDB) findRecipes(ctx context.Context, filter interface{}) ([]model.Recipe, error) {
	var recipes []model.Recipe
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := o.db.Collection(recipesCollection).Find(ctx, filter, opts)
	if err != nil {
		return recipes, err
	}
	if err := cursor.All(ctx, &recipes); err != nil {
		return recipes, fmt.Errorf("cannot decode recipes: %w", err)
	}
	return recipes, nil
}

func (o *MongoDB) GetRecipes(ctx context.Context) ([]model.Recipe, error) {
	return o.findRecipes(ctx, bson.M{})
}

func (o *MongoDB) GetRecipesByUser(ctx context.Context, username string) ([]model.Recipe, error) {
	return o.findRecipes(ctx, bson.M{"created_by": model.NormalizeUsername(username)})
}

func (o *MongoDB) GetRecipeByID(ctx context.Context, recipeID string) (model.Recipe, error) {
	recipe := model.Recipe{}
	return recipe, findOne(ctx, o.db.Collection(recipesCollection), bson.M{"_id": recipeID}, &recipe)
}

func (o *MongoDB) checkCategory(ctx context.Context, categoryID string) error {
	if _, err := o.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrInvalidReference
		}
		return err
	}
	return nil
}

// CreateRecipe inserts a recipe. The category check and the insert are two
// separate round trips; a category deleted in between leaves the recipe dangling.
func (o *MongoDB) CreateRecipe(ctx context.Context, recipe model.Recipe) error {
	if err := o.checkCategory(ctx, recipe.CategoryID); err != nil {
		return err
	}
	return insertOne(ctx, o.db.Collection(recipesCollection), recipe)
}

func (o *MongoDB) SaveRecipe(ctx context.Context, recipe model.Recipe) error {
	if err := o.checkCategory(ctx, recipe.CategoryID); err != nil {
		return err
	}
	return replaceOne(ctx, o.db.Collection(recipesCollection), recipe.ID, recipe)
}

func (o *MongoDB) DeleteRecipe(ctx context.Context, recipeID string) error {
	return deleteOne(ctx, o.db.Collection(recipesCollection), recipeID)
}

func (o *MongoDB) CountRecipesByCategory(ctx context.Context, categoryID string) (int, error) {
	n, err := o.db.Collection(recipesCollection).CountDocuments(ctx, bson.M{"category_id": categoryID})
	return int(n), err
}

func (o *MongoDB) GetCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	opts := options.Find().
		SetSort(bson.D{{Key: "category_name", Value: 1}}).
		SetCollation(caseInsensitive)
	cursor, err := o.db.Collection(categoriesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return categories, err
	}
	if err := cursor.All(ctx, &categories); err != nil {
		return categories, fmt.Errorf("cannot decode categories: %w", err)
	}
	return categories, nil
}

func (o *MongoDB) GetCategoryByID(ctx context.Context, categoryID string) (model.Category, error) {
	category := model.Category{}
	return category, findOne(ctx, o.db.Collection(categoriesCollection), bson.M{"_id": categoryID}, &category)
}

func (o *MongoDB) CreateCategory(ctx context.Context, category model.Category) error {
	return insertOne(ctx, o.db.Collection(categoriesCollection), category)
}

func (o *MongoDB) SaveCategory(ctx context.Context, category model.Category) error {
	return replaceOne(ctx, o.db.Collection(categoriesCollection), category.ID, category)
}

// DeleteCategory counts referencing recipes before deleting. The two steps are
// not atomic: a recipe inserted between them is orphaned.
func (o *MongoDB) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := o.GetCategoryByID(ctx, categoryID); err != nil {
		return err
	}
	count, err := o.CountRecipesByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrInUse
	}
	return deleteOne(ctx, o.db.Collection(categoriesCollection), categoryID)
}

var _ store.IStore = (*MongoDB)(nil)
