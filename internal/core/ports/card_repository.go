package ports

import (
	"context"

	"github.com/fintrust/card-ledger/internal/core/domain"
	"github.com/fintrust/card-ledger/pkg/money"
)

// CardRepository is the ledger store: persistence for card records. No
// caching semantics are assumed; every call reads or writes the backing
// store directly.
type CardRepository interface {
	// Create persists a new card, assigning its ID. Returns
	// domain.ErrCardNumberTaken when the number is already in use.
	Create(ctx context.Context, card *domain.Card) error

	// FindByID returns the card or domain.ErrCardNotFound.
	FindByID(ctx context.Context, id string) (*domain.Card, error)

	// FindAllByOwner returns every card owned by ownerID, possibly empty.
	FindAllByOwner(ctx context.Context, ownerID string) ([]*domain.Card, error)

	// FindAll returns every card in the store.
	FindAll(ctx context.Context) ([]*domain.Card, error)

	// UpdateStatus sets the card's status and returns the updated record,
	// or domain.ErrCardNotFound.
	UpdateStatus(ctx context.Context, id string, status domain.CardStatus) (*domain.Card, error)

	// Delete permanently removes the card, or returns domain.ErrCardNotFound.
	Delete(ctx context.Context, id string) error

	// TransferBalance atomically moves amount from one card to the other.
	// The decrement is guarded by the source balance inside the same
	// transaction, so the balance checked is the balance mutated. Returns
	// domain.ErrInsufficientFunds when the source cannot cover amount at
	// commit time, domain.ErrCardNotFound when either card vanished.
	TransferBalance(ctx context.Context, fromID, toID string, amount money.Amount) error
}
