package stats

import (
	"context"

	"github.com/pocketledger/pocketledger/pkg/settings"
	"github.com/pocketledger/pocketledger/pkg/transaction"
)

type transactionRepoStub struct {
	items []transaction.Transaction
}

func newTransactionRepoStub() *transactionRepoStub {
	return &transactionRepoStub{items: []transaction.Transaction{}}
}

func (s *transactionRepoStub) setItems(items []transaction.Transaction) {
	s.items = items
}

func (s *transactionRepoStub) LoadAll(ctx context.Context) ([]transaction.Transaction, error) {
	return s.items, nil
}

func (s *transactionRepoStub) SaveAll(ctx context.Context, items []transaction.Transaction) error {
	s.items = items
	return nil
}

func (s *transactionRepoStub) Clear(ctx context.Context) error {
	s.items = []transaction.Transaction{}
	return nil
}

func (s *transactionRepoStub) RawSnapshot(ctx context.Context) (string, error) {
	return "[]", nil
}

func (s *transactionRepoStub) reset() {
	s.items = []transaction.Transaction{}
}

type settingsServiceStub struct {
	prefs settings.Settings
}

func newSettingsServiceStub() *settingsServiceStub {
	return &settingsServiceStub{prefs: settings.Settings{
		Theme:    settings.DefaultTheme,
		Currency: settings.DefaultCurrency,
	}}
}

func (s *settingsServiceStub) Get(ctx context.Context) (settings.Settings, error) {
	return s.prefs, nil
}

func (s *settingsServiceStub) Update(ctx context.Context, patch settings.Patch) (settings.Settings, error) {
	if patch.Theme != nil {
		s.prefs.Theme = *patch.Theme
	}
	if patch.Currency != nil {
		s.prefs.Currency = *patch.Currency
	}
	if patch.MonthlyTarget != nil {
		s.prefs.MonthlyTarget = *patch.MonthlyTarget
	}
	return s.prefs, nil
}

func (s *settingsServiceStub) reset() {
	s.prefs = settings.Settings{
		Theme:    settings.DefaultTheme,
		Currency: settings.DefaultCurrency,
	}
}
