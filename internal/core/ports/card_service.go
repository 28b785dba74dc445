package ports

import (
	"context"

	"github.com/fintrust/card-ledger/internal/core/domain"
	"github.com/fintrust/card-ledger/pkg/money"
)

// CreateCardInput carries the data for issuing a new card.
type CreateCardInput struct {
	OwnerID string
	Number  string
	// InitialBalance is optional; nil means zero.
	InitialBalance *money.Amount
}

// TransferInput carries the parameters of a balance transfer between two
// cards of the same owner.
type TransferInput struct {
	FromCardID string
	ToCardID   string
	Amount     money.Amount
}

// CardService defines the card ledger use cases. Every method takes the
// resolved caller identity and enforces role and ownership checks itself.
type CardService interface {
	// CreateCard issues a card for an existing user. ADMIN only.
	CreateCard(ctx context.Context, id domain.Identity, in CreateCardInput) (*domain.Card, error)

	// GetCard reads a single card by id. ADMIN only.
	GetCard(ctx context.Context, id domain.Identity, cardID string) (*domain.Card, error)

	// ListUserCards returns all cards owned by userID. ADMIN only.
	ListUserCards(ctx context.Context, id domain.Identity, userID string) ([]*domain.Card, error)

	// ListMyCards returns all cards owned by the caller. USER only.
	ListMyCards(ctx context.Context, id domain.Identity) ([]*domain.Card, error)

	// ListAllCards returns every card in the ledger. ADMIN only.
	ListAllCards(ctx context.Context, id domain.Identity) ([]*domain.Card, error)

	// RequestLock marks the caller's own card LOCK_REQUEST. USER only.
	RequestLock(ctx context.Context, id domain.Identity, cardID string) (*domain.Card, error)

	// BlockCard forces the card BLOCKED. ADMIN only, idempotent.
	BlockCard(ctx context.Context, id domain.Identity, cardID string) (*domain.Card, error)

	// ActivateCard forces the card ACTIVE. ADMIN only, idempotent.
	ActivateCard(ctx context.Context, id domain.Identity, cardID string) (*domain.Card, error)

	// DeleteCard permanently removes the card. ADMIN only.
	DeleteCard(ctx context.Context, id domain.Identity, cardID string) error

	// Transfer moves funds between two cards of the caller. USER only.
	Transfer(ctx context.Context, id domain.Identity, in TransferInput) error

	// CheckBalance returns the stored balance of the caller's own card.
	// USER only.
	CheckBalance(ctx context.Context, id domain.Identity, cardID string) (money.Amount, error)
}
