package app

import (
	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Transactions
	r.HandleFunc("/api/transactions", deps.TransactionHandler.ListTransactions).Methods("GET")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.CreateTransaction).Methods("POST")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.ClearTransactions).Methods("DELETE")
	r.HandleFunc("/api/transactions/export", deps.TransactionHandler.ExportTransactions).Methods("GET")
	r.HandleFunc("/api/transactions/import", deps.TransactionHandler.ImportTransactions).Methods("POST")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.DeleteTransaction).Methods("DELETE")

	// Stats
	r.HandleFunc("/api/stats", deps.StatsHandler.GetSummary).Methods("GET")

	// Settings
	r.HandleFunc("/api/settings", deps.SettingsHandler.GetSettings).Methods("GET")
	r.HandleFunc("/api/settings", deps.SettingsHandler.UpdateSettings).Methods("PUT")
}
