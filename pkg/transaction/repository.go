package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pocketledger/pocketledger/internal/storage"
	log "github.com/sirupsen/logrus"
)

// StorageKey is the single key the whole transaction collection lives under.
const StorageKey = "sf_transactions"

var ErrTransactionNotFound = errors.New("transaction not found")

type Repository interface {
	LoadAll(ctx context.Context) ([]Transaction, error)
	SaveAll(ctx context.Context, items []Transaction) error
	Clear(ctx context.Context) error
	RawSnapshot(ctx context.Context) (string, error)
}

type RepositoryImpl struct {
	store storage.Store
}

func NewRepository(store storage.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

// LoadAll reads the whole collection. A missing key yields an empty ledger;
// malformed content is logged and treated as empty so the ledger stays usable
// after external tampering. Legacy records missing a type are normalized via
// the category fallback and the normalized form is persisted right away.
func (r *RepositoryImpl) LoadAll(ctx context.Context) ([]Transaction, error) {
	raw, ok, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("could not load transactions: %w", err)
	}
	if !ok {
		return []Transaction{}, nil
	}

	var items []Transaction
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warnf("stored transactions are malformed, treating ledger as empty: %v", err)
		return []Transaction{}, nil
	}
	if items == nil {
		items = []Transaction{}
	}

	normalized := false
	for i := range items {
		if items[i].Normalize() {
			normalized = true
		}
	}
	if normalized {
		log.Infof("normalized legacy transactions without a type field")
		if err := r.SaveAll(ctx, items); err != nil {
			return nil, err
		}
	}

	return items, nil
}

func (r *RepositoryImpl) SaveAll(ctx context.Context, items []Transaction) error {
	if items == nil {
		items = []Transaction{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		err := fmt.Errorf("could not serialize transactions: %w", err)
		log.Error(err)
		return err
	}
	if err := r.store.Set(ctx, StorageKey, string(payload)); err != nil {
		return fmt.Errorf("could not save transactions: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("could not clear transactions: %w", err)
	}
	return nil
}

// RawSnapshot returns the verbatim stored payload, which is what gets
// exported to file. A missing key reads as an empty collection.
func (r *RepositoryImpl) RawSnapshot(ctx context.Context) (string, error) {
	raw, ok, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return "", fmt.Errorf("could not read transactions: %w", err)
	}
	if !ok {
		return "[]", nil
	}
	return raw, nil
}
