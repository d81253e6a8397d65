package handlers

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/CartoboT/internal/format"
	"github.com/Kerhoff/CartoboT/internal/service"
)

var quantityRegex = regexp.MustCompile(`^x(\d+(?:\.\d+)?)$`)

// ---------------------------------------------------------------------------
// AddHandler – /add <item> [x<quantity>] [unit]
// ---------------------------------------------------------------------------

// AddHandler handles the /add command to put an item on the caller's
// shopping list. The list (and the user record) are created lazily on first
// use. An optional quantity suffix like "x2" or "x0.5" may follow the name,
// optionally followed by a unit.
type AddHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewAddHandler creates a new AddHandler.
func NewAddHandler(svc *service.Service, logger *logrus.Logger) *AddHandler {
	return &AddHandler{svc: svc, logger: logger}
}

// Handle processes the /add command.
func (h *AddHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return reply(bot, message,
			"❌ Please provide an item name.\n\n"+
				"*Usage:*\n"+
				"`/add Milk x2 l`\n"+
				"`/add Whole wheat bread`")
	}

	name, quantity, unit, ok := parseAddArgs(args)
	if !ok {
		return reply(bot, message, "❌ Could not parse the quantity. Try `/add Milk x2 l`.")
	}

	ctx := context.Background()
	userID := callerID(message)

	if _, err := h.svc.EnsureUser(ctx, userID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	_, item, err := h.svc.AddItem(ctx, userID, name, quantity, unit, "", "")
	if err != nil {
		if text := userErrorText(err, name); text != "" {
			return reply(bot, message, text)
		}
		return fmt.Errorf("add item: %w", err)
	}

	return reply(bot, message, fmt.Sprintf("Added '%s' (%s) to your shopping list.", item.Name, format.QuantityUnit(item)))
}

// parseAddArgs splits "/add" arguments into name, quantity and unit. The
// quantity token is recognized anywhere after the first token; everything
// after it is the unit.
func parseAddArgs(args []string) (name string, quantity float64, unit string, ok bool) {
	quantity = 1
	for i, arg := range args {
		matches := quantityRegex.FindStringSubmatch(arg)
		if matches == nil || i == 0 {
			continue
		}
		q, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return "", 0, "", false
		}
		return strings.Join(args[:i], " "), q, strings.Join(args[i+1:], " "), true
	}
	return strings.Join(args, " "), quantity, "", true
}

// ---------------------------------------------------------------------------
// RemoveHandler – /remove <item>
// ---------------------------------------------------------------------------

// RemoveHandler handles the /remove command. Removal happens store-side and
// takes out every item whose name matches case-insensitively, not just the
// first one.
type RemoveHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewRemoveHandler creates a new RemoveHandler.
func NewRemoveHandler(svc *service.Service, logger *logrus.Logger) *RemoveHandler {
	return &RemoveHandler{svc: svc, logger: logger}
}

// Handle processes the /remove command.
func (h *RemoveHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return reply(bot, message, "❌ Please provide an item name.\n\n*Usage:* `/remove Milk`")
	}

	name := strings.Join(args, " ")
	_, _, err := h.svc.RemoveItem(context.Background(), callerID(message), name)
	if err != nil {
		if text := userErrorText(err, name); text != "" {
			return reply(bot, message, text)
		}
		return fmt.Errorf("remove item: %w", err)
	}

	return reply(bot, message, fmt.Sprintf("Removed '%s' from your shopping list.", name))
}

// ---------------------------------------------------------------------------
// UpdateHandler – /update <item> [qty=N] [unit=U] [category=C] [notes=...]
// ---------------------------------------------------------------------------

// UpdateHandler handles the /update command. Only the fields given as
// key=value pairs are overwritten; everything else on the item is left
// untouched.
type UpdateHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(svc *service.Service, logger *logrus.Logger) *UpdateHandler {
	return &UpdateHandler{svc: svc, logger: logger}
}

// Handle processes the /update command.
func (h *UpdateHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	name, upd, ok := parseUpdateArgs(args)
	if !ok {
		return reply(bot, message,
			"❌ Could not parse the update.\n\n"+
				"*Usage:*\n"+
				"`/update Milk qty=2 unit=l`\n"+
				"`/update Milk category=dairy notes=the lactose free one`")
	}

	_, item, err := h.svc.UpdateItem(context.Background(), callerID(message), name, upd)
	if err != nil {
		if text := userErrorText(err, name); text != "" {
			return reply(bot, message, text)
		}
		return fmt.Errorf("update item: %w", err)
	}

	return reply(bot, message, fmt.Sprintf("Updated '%s' in your shopping list.", item.Name))
}

// parseUpdateArgs splits "/update" arguments into the item name and the
// key=value pairs that follow it. The notes value swallows the rest of the
// input so it may contain spaces.
func parseUpdateArgs(args []string) (name string, upd service.ItemUpdate, ok bool) {
	kvStart := -1
	for i, arg := range args {
		if strings.Contains(arg, "=") {
			kvStart = i
			break
		}
	}
	if kvStart < 1 {
		return "", service.ItemUpdate{}, false
	}

	name = strings.Join(args[:kvStart], " ")

	for i := kvStart; i < len(args); i++ {
		key, value, found := strings.Cut(args[i], "=")
		if !found {
			return "", service.ItemUpdate{}, false
		}
		switch key {
		case "qty", "quantity":
			q, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return "", service.ItemUpdate{}, false
			}
			upd.Quantity = &q
		case "unit":
			upd.Unit = &value
		case "category", "cat":
			upd.Category = &value
		case "notes":
			notes := strings.Join(append([]string{value}, args[i+1:]...), " ")
			upd.Notes = &notes
			return name, upd, true
		default:
			return "", service.ItemUpdate{}, false
		}
	}

	return name, upd, true
}
