package app

import (
	"fmt"

	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/event_bus"
	"github.com/pocketledger/pocketledger/internal/notify"
	"github.com/pocketledger/pocketledger/internal/storage"
	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/pocketledger/pocketledger/pkg/settings"
	"github.com/pocketledger/pocketledger/pkg/stats"
	"github.com/pocketledger/pocketledger/pkg/transaction"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Notifier notify.Notifier

	TransactionRepo    transaction.Repository
	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	SettingsService settings.Service
	SettingsHandler *settings.Handler

	StatsService       *stats.StatsServiceImpl
	CsvSummaryRenderer *stats.CsvSummaryRendererImpl
	StatsHandler       *stats.StatsHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store storage.Store, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Notifier = notify.LogNotifier{}
	deps.Clock = &utils.SystemClock{}

	validator := transaction.NewValidator(transaction.PolicyWhitespaceDuplicate)
	deps.TransactionRepo = transaction.NewRepository(store)
	deps.TransactionService = transaction.NewService(deps.TransactionRepo, validator, deps.Clock, deps.EventBus)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.SettingsService = settings.NewService(store, deps.EventBus)
	deps.SettingsHandler = settings.NewHandler(deps.SettingsService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.TransactionRepo, deps.SettingsService)
	deps.CsvSummaryRenderer = stats.NewCsvSummaryRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvSummaryRenderer)

	subscribeNotifications(deps.EventBus, deps.Notifier)

	return deps
}

// subscribeNotifications is the toast analogue: ledger mutations surface as
// user-facing messages through the notification sink.
func subscribeNotifications(bus *event_bus.EventBus, notifier notify.Notifier) {
	bus.Subscribe(event_bus.TransactionAdded, func(e event_bus.Event) error {
		notifier.Notify("Transaction added successfully!", notify.SeveritySuccess)
		return nil
	})
	bus.Subscribe(event_bus.TransactionUpdated, func(e event_bus.Event) error {
		notifier.Notify("Transaction updated.", notify.SeveritySuccess)
		return nil
	})
	bus.Subscribe(event_bus.TransactionDeleted, func(e event_bus.Event) error {
		notifier.Notify("Transaction deleted.", notify.SeverityInfo)
		return nil
	})
	bus.Subscribe(event_bus.TransactionsCleared, func(e event_bus.Event) error {
		notifier.Notify("All transaction data has been cleared.", notify.SeverityInfo)
		return nil
	})
	bus.Subscribe(event_bus.TransactionsImported, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.BulkEvent); ok {
			notifier.Notify(fmt.Sprintf("Imported %d transactions.", data.Count), notify.SeveritySuccess)
		}
		return nil
	})
	bus.Subscribe(event_bus.SettingsChanged, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.SettingsEvent); ok {
			notifier.Notify(fmt.Sprintf("Setting %s changed to %q.", data.Field, data.Value), notify.SeverityInfo)
		}
		return nil
	})
}
