// Package waitlist records email signups for launch announcements.
package waitlist

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrExists       = errors.New("email already on waitlist")
	ErrInvalidEmail = errors.New("invalid email address")
)

// Entry is a single signup
type Entry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists waitlist entries. Add returns ErrExists when the
// normalized email is already present.
type Store interface {
	Add(ctx context.Context, email string) (*Entry, error)
	Exists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// NormalizeEmail trims, lowercases and validates an address.
// Display names ("Bob <bob@x.com>") are rejected.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func newEntry(email string) *Entry {
	return &Entry{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}
