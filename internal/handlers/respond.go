package handlers

import (
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kerhoff/CartoboT/internal/errs"
)

// callerID resolves the external user identifier for a message. The Telegram
// user ID is the caller-supplied identity every list is keyed by.
func callerID(message *tgbotapi.Message) string {
	return strconv.FormatInt(message.From.ID, 10)
}

// reply sends a Markdown message back to the chat the command came from.
func reply(bot *tgbotapi.BotAPI, message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// userErrorText maps expected domain errors (validation, not found) to the
// string shown to the user. It returns "" for unexpected errors, which bubble
// up to the router and degrade to a generic failure message there.
func userErrorText(err error, itemName string) string {
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		return "Error: " + verr.Message
	}

	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		if nf.Resource == "item" {
			return fmt.Sprintf("Could not find '%s' in your shopping list.", itemName)
		}
		return "No shopping list found."
	}

	return ""
}
