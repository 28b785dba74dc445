package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrust/card-ledger/internal/core/domain"
	"github.com/fintrust/card-ledger/pkg/money"
)

const collectionCards = "cards"

// CardRepository is the MongoDB-backed ledger store.
type CardRepository struct {
	col *mongo.Collection
}

func NewCardRepository(db *mongo.Database) *CardRepository {
	return &CardRepository{col: db.Collection(collectionCards)}
}

// Create inserts a new card document, assigning its id.
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	card.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, card); err != nil {
		card.ID = ""
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCardNumberTaken
		}
		return err
	}
	return nil
}

func (r *CardRepository) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var card domain.Card
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]*domain.Card, error) {
	return r.findMany(ctx, bson.M{"owner_id": ownerID})
}

func (r *CardRepository) FindAll(ctx context.Context) ([]*domain.Card, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *CardRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cards := make([]*domain.Card, 0)
	for cur.Next(ctx) {
		var card domain.Card
		if err := cur.Decode(&card); err != nil {
			return nil, err
		}
		cards = append(cards, &card)
	}
	return cards, cur.Err()
}

// UpdateStatus sets the card's status and returns the updated document.
func (r *CardRepository) UpdateStatus(ctx context.Context, id string, status domain.CardStatus) (*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	after := options.After
	var card domain.Card
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// TransferBalance moves amount between two card documents inside one
// session transaction. Updates are applied in ascending id order so two
// concurrent transfers over the same pair cannot deadlock, and the source
// decrement is guarded by "balance >= amount" in its filter, so the balance
// checked is the balance mutated, under the same transaction. A guard miss
// aborts with ErrInsufficientFunds when the source still exists and with
// ErrCardNotFound when it vanished mid-transfer; a missing destination
// aborts with ErrCardNotFound.
func (r *CardRepository) TransferBalance(ctx context.Context, fromID, toID string, amount money.Amount) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	session, err := r.col.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	type update struct {
		id      string
		delta   int64
		guarded bool
	}
	updates := []update{
		{id: fromID, delta: -amount.MinorUnits(), guarded: true},
		{id: toID, delta: amount.MinorUnits()},
	}
	if updates[1].id < updates[0].id {
		updates[0], updates[1] = updates[1], updates[0]
	}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, u := range updates {
			filter := bson.M{"_id": u.id}
			if u.guarded {
				filter["balance"] = bson.M{"$gte": amount.MinorUnits()}
			}
			res, err := r.col.UpdateOne(sc, filter, bson.M{"$inc": bson.M{"balance": u.delta}})
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				if !u.guarded {
					return nil, domain.ErrCardNotFound
				}
				// The guarded filter matches on id and balance at once, so a
				// miss is ambiguous: the card may have been deleted between
				// the read and this write. Re-probe inside the transaction.
				err := r.col.FindOne(sc, bson.M{"_id": u.id}).Err()
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, domain.ErrCardNotFound
				}
				if err != nil {
					return nil, err
				}
				return nil, domain.ErrInsufficientFunds
			}
		}
		return nil, nil
	})
	return err
}

// EnsureIndexes creates the unique card-number index.
func (r *CardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := true
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: &options.IndexOptions{Unique: &unique},
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
