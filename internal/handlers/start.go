package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// StartHandler handles the /start command
type StartHandler struct {
	logger *logrus.Logger
}

// NewStartHandler creates a new start command handler
func NewStartHandler(logger *logrus.Logger) *StartHandler {
	return &StartHandler{
		logger: logger,
	}
}

// Handle processes the /start command
func (h *StartHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	welcomeText := `🛒 *Welcome to CartoboT!*

I keep a personal shopping list for you.

*Getting started:*
• /add <item> [x<qty>] [unit] - Put something on the list
• /list - See what you still need to buy
• /check <item> - Tick it off while you shop
• /help - Show all commands

Your list is private to your account and follows you across chats.

Add your first item with /add Milk x2 l!`

	if err := reply(bot, message, welcomeText); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent start message")

	return nil
}
