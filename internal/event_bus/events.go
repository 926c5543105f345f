package event_bus

// Ledger mutation events published by the transaction service. The
// notification sink subscribes to these to surface toast-style messages.
const (
	TransactionAdded     EventType = "transaction.added"
	TransactionUpdated   EventType = "transaction.updated"
	TransactionDeleted   EventType = "transaction.deleted"
	TransactionsCleared  EventType = "transactions.cleared"
	TransactionsImported EventType = "transactions.imported"
	SettingsChanged      EventType = "settings.changed"
)

// TransactionEvent is the payload for single-record mutations.
type TransactionEvent struct {
	ID          string
	Description string
	Amount      float64
}

// BulkEvent is the payload for clear and import operations.
type BulkEvent struct {
	Count int
}

// SettingsEvent is the payload for preference changes.
type SettingsEvent struct {
	Field string
	Value string
}
