package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/CartoboT/internal/format"
	"github.com/Kerhoff/CartoboT/internal/service"
)

// ListHandler handles the /list command, rendering the caller's complete
// shopping list. A brand-new caller gets an empty list created for them.
type ListHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(svc *service.Service, logger *logrus.Logger) *ListHandler {
	return &ListHandler{svc: svc, logger: logger}
}

// Handle processes the /list command.
func (h *ListHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctx := context.Background()
	userID := callerID(message)

	if _, err := h.svc.EnsureUser(ctx, userID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	list, err := h.svc.GetShoppingList(ctx, userID)
	if err != nil {
		return fmt.Errorf("get shopping list: %w", err)
	}

	return reply(bot, message, format.List(list))
}

// ClearBoughtHandler handles the /clearbought command, removing every
// purchased item from the list.
type ClearBoughtHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewClearBoughtHandler creates a new ClearBoughtHandler.
func NewClearBoughtHandler(svc *service.Service, logger *logrus.Logger) *ClearBoughtHandler {
	return &ClearBoughtHandler{svc: svc, logger: logger}
}

// Handle processes the /clearbought command.
func (h *ClearBoughtHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	_, count, err := h.svc.ClearCheckedItems(context.Background(), callerID(message))
	if err != nil {
		if text := userErrorText(err, ""); text != "" {
			return reply(bot, message, text)
		}
		return fmt.Errorf("clear checked items: %w", err)
	}

	return reply(bot, message, fmt.Sprintf("Removed %d purchased item(s) from your shopping list.", count))
}

// ClearAllHandler handles the /clearall command, emptying the list.
type ClearAllHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewClearAllHandler creates a new ClearAllHandler.
func NewClearAllHandler(svc *service.Service, logger *logrus.Logger) *ClearAllHandler {
	return &ClearAllHandler{svc: svc, logger: logger}
}

// Handle processes the /clearall command.
func (h *ClearAllHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	_, _, err := h.svc.ClearAllItems(context.Background(), callerID(message))
	if err != nil {
		if text := userErrorText(err, ""); text != "" {
			return reply(bot, message, text)
		}
		return fmt.Errorf("clear all items: %w", err)
	}

	return reply(bot, message, "Cleared all items from your shopping list.")
}

// ResetHandler handles the /reset command, deleting the list document
// entirely. The next /add or /list starts over from an empty default list.
type ResetHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewResetHandler creates a new ResetHandler.
func NewResetHandler(svc *service.Service, logger *logrus.Logger) *ResetHandler {
	return &ResetHandler{svc: svc, logger: logger}
}

// Handle processes the /reset command.
func (h *ResetHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	deleted, err := h.svc.DeleteList(context.Background(), callerID(message))
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}

	if !deleted {
		return reply(bot, message, "No shopping list found.")
	}
	return reply(bot, message, "Deleted your shopping list.")
}

// ProfileHandler handles the /profile command, showing which user record the
// shopping list is keyed by.
type ProfileHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.Service, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, logger: logger}
}

// Handle processes the /profile command.
func (h *ProfileHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	user, err := h.svc.EnsureUser(context.Background(), callerID(message))
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	text := "*Your Shopping List Profile:*\n\n" +
		fmt.Sprintf("• Name: %s\n", user.DisplayName) +
		fmt.Sprintf("• User ID: `%s`\n\n", user.ExternalID) +
		"This shopping list is unique to your account."

	return reply(bot, message, text)
}
