package telegram

import (
	"fmt"
	"strings"
	"sync"

	"github.com/NicoNex/echotron/v3"
	"github.com/labstack/gommon/log"

	"github.com/flavorvault/flavorvault/model"
)

var (
	TelegramToken  string
	TelegramChatID int64

	TgBot      *echotron.API
	TgBotMutex sync.RWMutex
)

// Start connects the bot used for recipe announcements. Without a token or
// chat id the bot stays disabled and announcements are skipped.
func Start() error {
	token := TelegramToken
	if token == "" || TelegramChatID == 0 {
		return nil
	}

	bot := echotron.NewAPI(token)
	res, err := bot.GetMe()
	if err != nil {
		return fmt.Errorf("unable to connect to bot: %w", err)
	}
	if !res.Ok {
		return fmt.Errorf("unable to connect to bot: %s", res.Description)
	}

	TgBotMutex.Lock()
	TgBot = &bot
	TgBotMutex.Unlock()

	log.Infof("[Telegram] Authorized as %s", res.Result.Username)
	return nil
}

// FormatAnnouncement builds the chat message for a newly shared recipe
func FormatAnnouncement(recipe model.Recipe, categoryName string, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New recipe: %s (%s)\n", recipe.RecipeName, categoryName)
	fmt.Fprintf(&b, "Shared by %s", recipe.CreatedBy)
	if recipe.Healthy {
		b.WriteString(", healthy choice")
	}
	if link != "" {
		fmt.Fprintf(&b, "\n%s", link)
	}
	return b.String()
}

// AnnounceRecipe posts the recipe to the configured chat
func AnnounceRecipe(recipe model.Recipe, categoryName string, link string) error {
	TgBotMutex.RLock()
	defer TgBotMutex.RUnlock()

	if TgBot == nil {
		return nil
	}

	res, err := TgBot.SendMessage(FormatAnnouncement(recipe, categoryName, link), TelegramChatID, nil)
	if err != nil {
		return err
	}
	if !res.Ok {
		return fmt.Errorf("telegram rejected message: %s", res.Description)
	}
	return nil
}
