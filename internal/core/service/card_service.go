package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrust/card-ledger/internal/core/domain"
	"github.com/fintrust/card-ledger/internal/core/ports"
	"github.com/fintrust/card-ledger/internal/metrics"
	"github.com/fintrust/card-ledger/pkg/money"
)

// CardService orchestrates the card ledger: issuance, lifecycle status,
// balance inquiry and same-owner transfers. Authorization is enforced here,
// against the identity passed into every call.
type CardService struct {
	cards  ports.CardRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewCardService(cards ports.CardRepository, users ports.UserRepository, logger zerolog.Logger) *CardService {
	return &CardService{cards: cards, users: users, logger: logger}
}

// CreateCard issues a new card for an existing user. The expiration date is
// creation time plus three years; the balance defaults to zero.
func (s *CardService) CreateCard(ctx context.Context, id domain.Identity, in ports.CreateCardInput) (*domain.Card, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !domain.ValidCardNumber(in.Number) {
		return nil, domain.ErrCardNumberFormat
	}

	owner, err := s.users.FindByID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	balance := money.Amount(0)
	if in.InitialBalance != nil {
		balance = *in.InitialBalance
	}
	if balance.IsNegative() {
		return nil, domain.ErrNegativeBalance
	}

	now := time.Now().UTC()
	card := &domain.Card{
		Number:         in.Number,
		OwnerID:        owner.ID,
		OwnerUsername:  owner.Username,
		ExpirationDate: now.AddDate(domain.ExpiryYears, 0, 0),
		Status:         domain.StatusActive,
		Balance:        balance,
		CreatedAt:      now,
	}

	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}

	metrics.CardsCreatedTotal.Inc()
	s.logger.Info().
		Str("card_id", card.ID).
		Str("owner_id", owner.ID).
		Msg("card created")

	return card, nil
}

// GetCard reads a single card by id.
func (s *CardService) GetCard(ctx context.Context, id domain.Identity, cardID string) (*domain.Card, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.cards.FindByID(ctx, cardID)
}

// ListUserCards returns every card owned by the given user.
func (s *CardService) ListUserCards(ctx context.Context, id domain.Identity, userID string) ([]*domain.Card, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.cards.FindAllByOwner(ctx, userID)
}

// ListMyCards returns every card owned by the caller.
func (s *CardService) ListMyCards(ctx context.Context, id domain.Identity) ([]*domain.Card, error) {
	if err := domain.RequireRole(id, domain.RoleUser); err != nil {
		return nil, err
	}
	return s.cards.FindAllByOwner(ctx, id.UserID)
}

// ListAllCards returns every card in the ledger.
func (s *CardService) ListAllCards(ctx context.Context, id domain.Identity) ([]*domain.Card, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.cards.FindAll(ctx)
}

// RequestLock lets the owning user ask for a block. The status is set to
// LOCK_REQUEST whatever its current value, so repeating the request is a
// no-op rather than an error.
func (s *CardService) RequestLock(ctx context.Context, id domain.Identity, cardID string) (*domain.Card, error) {
	if err := domain.RequireRole(id, domain.RoleUser); err != nil {
		return nil, err
	}
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(id, card); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, cardID, domain.StatusLockRequest)
}

// BlockCard forces the card into BLOCKED.
func (s *CardService) BlockCard(ctx context.Context, id domain.Identity, cardID string) (*domain.Card, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, cardID, domain.StatusBlocked)
}

// ActivateCard forces the card into ACTIVE.
func (s *CardService) ActivateCard(ctx context.Context, id domain.Identity, cardID string) (*domain.Card, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, cardID, domain.StatusActive)
}

func (s *CardService) setStatus(ctx context.Context, cardID string, status domain.CardStatus) (*domain.Card, error) {
	card, err := s.cards.UpdateStatus(ctx, cardID, status)
	if err != nil {
		return nil, err
	}
	metrics.CardsStatusChangesTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info().
		Str("card_id", cardID).
		Str("status", string(status)).
		Msg("card status changed")
	return card, nil
}

// DeleteCard permanently removes the card record.
func (s *CardService) DeleteCard(ctx context.Context, id domain.Identity, cardID string) error {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.cards.Delete(ctx, cardID); err != nil {
		return err
	}
	s.logger.Info().Str("card_id", cardID).Msg("card deleted")
	return nil
}

// Transfer moves amount between two cards of the caller. Validation order:
// positive amount, both cards exist, both cards share one owner, that owner
// is the caller, source covers the amount. The double balance update is one
// atomic store operation; either both balances change or neither does.
func (s *CardService) Transfer(ctx context.Context, id domain.Identity, in ports.TransferInput) error {
	if err := domain.RequireRole(id, domain.RoleUser); err != nil {
		return err
	}
	if !in.Amount.IsPositive() {
		metrics.TransferErrorsTotal.WithLabelValues("invalid_amount").Inc()
		return domain.ErrInvalidAmount
	}

	from, err := s.cards.FindByID(ctx, in.FromCardID)
	if err != nil {
		return fmt.Errorf("transfer: source: %w", err)
	}
	to, err := s.cards.FindByID(ctx, in.ToCardID)
	if err != nil {
		return fmt.Errorf("transfer: destination: %w", err)
	}

	if from.OwnerID != to.OwnerID {
		metrics.TransferErrorsTotal.WithLabelValues("different_owners").Inc()
		return domain.ErrCardsDifferentOwners
	}
	// The shared owner must be the caller. Without this a user could move
	// funds between two cards of a third party.
	if err := domain.RequireOwner(id, from); err != nil {
		metrics.TransferErrorsTotal.WithLabelValues("not_owner").Inc()
		return err
	}
	if from.Balance < in.Amount {
		metrics.TransferErrorsTotal.WithLabelValues("insufficient_funds").Inc()
		return domain.ErrInsufficientFunds
	}

	start := time.Now()
	if err := s.cards.TransferBalance(ctx, from.ID, to.ID, in.Amount); err != nil {
		metrics.TransferErrorsTotal.WithLabelValues("store").Inc()
		return fmt.Errorf("transfer: %w", err)
	}
	metrics.TransfersTotal.Inc()
	metrics.TransferDuration.Observe(time.Since(start).Seconds())

	s.logger.Info().
		Str("from_card", from.ID).
		Str("to_card", to.ID).
		Str("amount", in.Amount.String()).
		Str("user_id", id.UserID).
		Msg("transfer completed")

	return nil
}

// CheckBalance returns the stored balance of the caller's own card, verbatim.
func (s *CardService) CheckBalance(ctx context.Context, id domain.Identity, cardID string) (money.Amount, error) {
	if err := domain.RequireRole(id, domain.RoleUser); err != nil {
		return 0, err
	}
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		return 0, err
	}
	if err := domain.RequireOwner(id, card); err != nil {
		return 0, err
	}
	return card.Balance, nil
}
