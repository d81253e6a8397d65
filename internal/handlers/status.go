package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/CartoboT/internal/service"
)

// CheckHandler handles the /check command, marking the first item whose name
// matches case-insensitively as purchased.
type CheckHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(svc *service.Service, logger *logrus.Logger) *CheckHandler {
	return &CheckHandler{svc: svc, logger: logger}
}

// Handle processes the /check command.
func (h *CheckHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return reply(bot, message, "❌ Please provide an item name.\n\n*Usage:* `/check Milk`")
	}

	name := strings.Join(args, " ")
	_, item, err := h.svc.CheckItem(context.Background(), callerID(message), name)
	if err != nil {
		if text := userErrorText(err, name); text != "" {
			return reply(bot, message, text)
		}
		return fmt.Errorf("check item: %w", err)
	}

	return reply(bot, message, fmt.Sprintf("Marked '%s' as purchased.", item.Name))
}

// UncheckHandler handles the /uncheck command, reverting the first matching
// item to unpurchased and clearing its checked timestamp.
type UncheckHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewUncheckHandler creates a new UncheckHandler.
func NewUncheckHandler(svc *service.Service, logger *logrus.Logger) *UncheckHandler {
	return &UncheckHandler{svc: svc, logger: logger}
}

// Handle processes the /uncheck command.
func (h *UncheckHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return reply(bot, message, "❌ Please provide an item name.\n\n*Usage:* `/uncheck Milk`")
	}

	name := strings.Join(args, " ")
	_, item, err := h.svc.UncheckItem(context.Background(), callerID(message), name)
	if err != nil {
		if text := userErrorText(err, name); text != "" {
			return reply(bot, message, text)
		}
		return fmt.Errorf("uncheck item: %w", err)
	}

	return reply(bot, message, fmt.Sprintf("Unmarked '%s'.", item.Name))
}
