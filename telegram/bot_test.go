package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flavorvault/flavorvault/model"
)

func TestFormatAnnouncement(t *testing.T) {
	recipe := model.Recipe{RecipeName: "Soup", CreatedBy: "chefjane", Healthy: true}
	msg := FormatAnnouncement(recipe, "Mains", "http://localhost:5000/recipe/r1")
	assert.Equal(t, "New recipe: Soup (Mains)\nShared by chefjane, healthy choice\nhttp://localhost:5000/recipe/r1", msg)
}

func TestAnnounceRecipeWithoutBot(t *testing.T) {
	TgBotMutex.Lock()
	TgBot = nil
	TgBotMutex.Unlock()

	assert.NoError(t, AnnounceRecipe(model.Recipe{RecipeName: "Soup"}, "Mains", ""))
}

func TestStartDisabledWithoutToken(t *testing.T) {
	TelegramToken = ""
	assert.NoError(t, Start())
	assert.Nil(t, TgBot)
}
