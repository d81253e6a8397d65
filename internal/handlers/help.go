package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// HelpHandler handles the /help command
type HelpHandler struct {
	logger *logrus.Logger
}

func NewHelpHandler(logger *logrus.Logger) *HelpHandler {
	return &HelpHandler{logger: logger}
}

func (h *HelpHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	helpText := `📚 *CartoboT Help*

*Your list:*
• /list - Show your shopping list
• /add <item> [x<qty>] [unit] - Add an item
• /remove <item> - Remove an item (all matching names)
• /update <item> qty=2 unit=l category=dairy notes=... - Change item details

*While shopping:*
• /check <item> - Mark an item as purchased
• /uncheck <item> - Mark an item as not purchased
• /clearbought - Remove every purchased item
• /clearall - Empty the list
• /reset - Delete the list entirely

*Account:*
• /profile - Show your shopping list profile

_Examples: /add Milk x2 l, /update Milk qty=3_`

	if err := reply(bot, message, helpText); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent help message")

	return nil
}
