package models

import (
	"strings"
	"time"

	"github.com/Kerhoff/CartoboT/internal/errs"
)

// User represents a shopping list owner. The external ID is supplied by the
// calling environment (the Telegram user ID for the bot surface) and is never
// generated internally.
type User struct {
	ExternalID  string    `json:"external_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser creates a validated user for the given external identifier with a
// derived display name.
func NewUser(externalID string) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		ExternalID:  externalID,
		DisplayName: deriveDisplayName(externalID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user invariants. A constructed user always satisfies
// them; call again after mutating fields directly.
func (u *User) Validate() error {
	if strings.TrimSpace(u.ExternalID) == "" {
		return &errs.ValidationError{Field: "external_id", Message: "User ID cannot be empty"}
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return &errs.ValidationError{Field: "email", Message: "Invalid email format", Value: u.Email}
	}
	return nil
}

// deriveDisplayName keeps at most the first 8 characters of the external ID,
// slicing on rune boundaries so multi-byte IDs are not cut mid-sequence.
func deriveDisplayName(externalID string) string {
	label := []rune(externalID)
	if len(label) > 8 {
		label = label[:8]
	}
	return "User " + string(label)
}
