package domain

import (
	"time"

	"github.com/fintrust/card-ledger/pkg/money"
)

// CardStatus represents the lifecycle state of a card.
type CardStatus string

const (
	StatusActive      CardStatus = "ACTIVE"
	StatusBlocked     CardStatus = "BLOCKED"
	StatusLockRequest CardStatus = "LOCK_REQUEST"
)

// Valid reports whether s is a known card status.
func (s CardStatus) Valid() bool {
	switch s {
	case StatusActive, StatusBlocked, StatusLockRequest:
		return true
	}
	return false
}

// CardNumberLength is the fixed length of a card number.
const CardNumberLength = 16

// ExpiryYears is how long a newly issued card stays valid.
const ExpiryYears = 3

// Card is the money-holding account record owned by exactly one user.
type Card struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	Number         string       `json:"number" bson:"number"`
	OwnerID        string       `json:"owner_id" bson:"owner_id"`
	OwnerUsername  string       `json:"owner_username" bson:"owner_username"`
	ExpirationDate time.Time    `json:"expiration_date" bson:"expiration_date"`
	Status         CardStatus   `json:"status" bson:"status"`
	Balance        money.Amount `json:"balance" bson:"balance"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
}

// ValidCardNumber reports whether number is exactly CardNumberLength digits.
func ValidCardNumber(number string) bool {
	if len(number) != CardNumberLength {
		return false
	}
	for _, c := range number {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// MaskCardNumber hides all but the last four digits: "**** **** **** 5678".
// Anything shorter than four characters masks fully.
func MaskCardNumber(number string) string {
	if len(number) < 4 {
		return "****"
	}
	return "**** **** **** " + number[len(number)-4:]
}

// MaskedNumber returns the card number in display form.
func (c *Card) MaskedNumber() string {
	return MaskCardNumber(c.Number)
}

// Expired reports whether the card's expiration date has passed. Expired
// cards are not auto-blocked; this is informational only.
func (c *Card) Expired(now time.Time) bool {
	return c.ExpirationDate.Before(now)
}

// FormatExpiration renders the expiration date the way card views expect.
func (c *Card) FormatExpiration() string {
	return c.ExpirationDate.UTC().Format("2006-01-02")
}
