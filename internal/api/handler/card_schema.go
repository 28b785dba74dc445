package handler

import (
	"github.com/fintrust/card-ledger/internal/core/domain"
	"github.com/fintrust/card-ledger/pkg/money"
)

// createCardRequest is the admin card-issuance payload. The balance is a
// decimal string so amounts never pass through float64.
type createCardRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Number  string `json:"number" validate:"required,len=16,numeric"`
	Balance string `json:"balance,omitempty"`
}

// transferRequest moves funds between two cards of the caller.
type transferRequest struct {
	FromCardID string `json:"from_card_id" validate:"required"`
	ToCardID   string `json:"to_card_id" validate:"required"`
	Amount     string `json:"amount" validate:"required"`
}

// cardResponse is the card view exposed by every endpoint. The number is
// always masked.
type cardResponse struct {
	ID             string       `json:"id"`
	Number         string       `json:"number"`
	OwnerUsername  string       `json:"owner_username"`
	UserID         string       `json:"user_id"`
	ExpirationDate string       `json:"expiration_date"`
	Status         string       `json:"status"`
	Balance        money.Amount `json:"balance"`
}

type balanceResponse struct {
	CardID  string       `json:"card_id"`
	Balance money.Amount `json:"balance"`
}

func toCardResponse(c *domain.Card) cardResponse {
	return cardResponse{
		ID:             c.ID,
		Number:         c.MaskedNumber(),
		OwnerUsername:  c.OwnerUsername,
		UserID:         c.OwnerID,
		ExpirationDate: c.FormatExpiration(),
		Status:         string(c.Status),
		Balance:        c.Balance,
	}
}

func toCardResponses(cards []*domain.Card) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}
