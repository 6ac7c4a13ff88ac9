package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/flavorvault/flavorvault/model"
	"github.com/flavorvault/flavorvault/store"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func namespace(mt *mtest.T, collection string) string {
	return mt.DB.Name() + "." + collection
}

func duplicateKey() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error",
	})
}

func emptyCursor(mt *mtest.T, collection string) bson.D {
	return mtest.CreateCursorResponse(0, namespace(mt, collection), mtest.FirstBatch)
}

func categoryCursor(mt *mtest.T, id, name string) bson.D {
	return mtest.CreateCursorResponse(0, namespace(mt, categoriesCollection), mtest.FirstBatch, bson.D{
		{Key: "_id", Value: id},
		{Key: "category_name", Value: name},
	})
}

func countCursor(mt *mtest.T, n int32) bson.D {
	return mtest.CreateCursorResponse(0, namespace(mt, recipesCollection), mtest.FirstBatch, bson.D{
		{Key: "_id", Value: 1},
		{Key: "n", Value: n},
	})
}

func TestUsers(t *testing.T) {
	mt := newMock(t)

	mt.Run("duplicate username", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(duplicateKey())

		err := db.CreateUser(context.Background(), model.User{Username: "ChefJane", Role: model.RoleMember})
		assert.ErrorIs(mt, err, store.ErrDuplicate)
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(emptyCursor(mt, usersCollection))

		_, err := db.GetUserByName(context.Background(), "nobody")
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("existing user", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt, usersCollection), mtest.FirstBatch, bson.D{
			{Key: "username", Value: "chefjane"},
			{Key: "role", Value: "admin"},
		}))

		user, err := db.GetUserByName(context.Background(), "ChefJane")
		require.NoError(mt, err)
		assert.Equal(mt, "chefjane", user.Username)
		assert.Equal(mt, model.RoleAdmin, user.Role)
	})
}

func TestRecipes(t *testing.T) {
	mt := newMock(t)

	mt.Run("missing category", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(emptyCursor(mt, categoriesCollection))

		err := db.CreateRecipe(context.Background(), model.Recipe{ID: "r1", CategoryID: "gone"})
		assert.ErrorIs(mt, err, store.ErrInvalidReference)
	})

	mt.Run("create", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(categoryCursor(mt, "c1", "Mains"), mtest.CreateSuccessResponse())

		err := db.CreateRecipe(context.Background(), model.Recipe{ID: "r1", CategoryID: "c1", RecipeName: "Soup"})
		assert.NoError(mt, err)
	})

	mt.Run("save unknown recipe", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(
			categoryCursor(mt, "c1", "Mains"),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		err := db.SaveRecipe(context.Background(), model.Recipe{ID: "missing", CategoryID: "c1"})
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("unknown recipe", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(emptyCursor(mt, recipesCollection))

		_, err := db.GetRecipeByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("delete unknown recipe", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := db.DeleteRecipe(context.Background(), "missing")
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, db.DeleteRecipe(context.Background(), "r1"))
	})
}

func TestCategories(t *testing.T) {
	mt := newMock(t)

	mt.Run("duplicate name", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(duplicateKey())

		err := db.CreateCategory(context.Background(), model.Category{ID: "c2", CategoryName: "mains"})
		assert.ErrorIs(mt, err, store.ErrDuplicate)
	})

	mt.Run("rename to a taken name", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(duplicateKey())

		err := db.SaveCategory(context.Background(), model.Category{ID: "c2", CategoryName: "Mains"})
		assert.ErrorIs(mt, err, store.ErrDuplicate)
	})

	mt.Run("rename unknown category", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := db.SaveCategory(context.Background(), model.Category{ID: "missing", CategoryName: "Soups"})
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("delete category in use", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(categoryCursor(mt, "c1", "Mains"), countCursor(mt, 2))

		err := db.DeleteCategory(context.Background(), "c1")
		assert.ErrorIs(mt, err, store.ErrInUse)
	})

	mt.Run("delete unused category", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(
			categoryCursor(mt, "c1", "Mains"),
			countCursor(mt, 0),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		assert.NoError(mt, db.DeleteCategory(context.Background(), "c1"))
	})

	mt.Run("delete unknown category", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(emptyCursor(mt, categoriesCollection))

		err := db.DeleteCategory(context.Background(), "missing")
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		db := &MongoDB{db: mt.DB}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt, categoriesCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "c1"}, {Key: "category_name", Value: "Desserts"}},
			bson.D{{Key: "_id", Value: "c2"}, {Key: "category_name", Value: "mains"}},
		))

		categories, err := db.GetCategories(context.Background())
		require.NoError(mt, err)
		require.Len(mt, categories, 2)
		assert.Equal(mt, "mains", categories[1].CategoryName)
	})
}
