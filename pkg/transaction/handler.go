package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/notify"
	"github.com/pocketledger/pocketledger/internal/rest"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

type InputDTO struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Notes       string `json:"notes"`
}

type PatchDTO struct {
	Description *string `json:"description"`
	Amount      *string `json:"amount"`
	Type        *string `json:"type"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Notes       *string `json:"notes"`
}

type ImportResultDTO struct {
	Imported       int `json:"imported"`
	RegeneratedIDs int `json:"regeneratedIds"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListTransactions godoc
// @Summary List transactions
// @Description List transactions with optional search, category filter and sort order
// @Tags Transaction
// @Produce json
// @Param q query string false "Substring match on description"
// @Param category query string false "Exact category filter"
// @Param sort query string false "date-desc|date-asc|amount-desc|amount-asc|category-asc|category-desc"
// @Success 200 {array} TransactionDTO
// @Router /api/transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter := ListFilter{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Sort:     r.URL.Query().Get("sort"),
	}
	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(items))
	for _, tx := range items {
		dtos = append(dtos, toDTO(tx))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CreateTransaction godoc
// @Summary Record a new transaction
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transaction body InputDTO true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Validation failed"
// @Router /api/transactions [post]
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating transaction")

	var input InputDTO
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	log.Tracef("Creating new transaction: %+v", input)

	created, err := h.service.Add(r.Context(), Input{
		Description: input.Description,
		Amount:      input.Amount,
		Type:        Type(input.Type),
		Category:    input.Category,
		Date:        input.Date,
		Notes:       input.Notes,
	})
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, rest.ErrorResponse{
				Error:   validationErr.Message,
				Details: fmt.Sprintf("field: %s", validationErr.Field),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateTransaction godoc
// @Summary Edit an existing transaction
// @Tags Transaction
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param patch body PatchDTO true "Fields to change"
// @Success 200 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Validation failed"
// @Failure 404 {object} rest.ErrorResponse "Transaction not found"
// @Router /api/transactions/{id} [put]
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]
	log.Debugf("Updating transaction %s", id)

	var patch PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	var typePatch *Type
	if patch.Type != nil {
		t := Type(*patch.Type)
		typePatch = &t
	}

	updated, err := h.service.Update(r.Context(), id, Patch{
		Description: patch.Description,
		Amount:      patch.Amount,
		Type:        typePatch,
		Category:    patch.Category,
		Date:        patch.Date,
		Notes:       patch.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, rest.ErrorResponse{Error: "Transaction not found"})
			return
		}
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, rest.ErrorResponse{
				Error:   validationErr.Message,
				Details: fmt.Sprintf("field: %s", validationErr.Field),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags Transaction
// @Param id path string true "Transaction id"
// @Success 204 {string} string "No content"
// @Router /api/transactions/{id} [delete]
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Debugf("Deleting transaction %s", id)

	if err := h.service.Remove(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearTransactions godoc
// @Summary Delete the entire ledger
// @Description Destructive and irreversible; requires confirm=true
// @Tags Transaction
// @Param confirm query bool true "Must be true"
// @Success 204 {string} string "No content"
// @Failure 409 {object} rest.ErrorResponse "Confirmation missing"
// @Router /api/transactions [delete]
func (h *Handler) ClearTransactions(w http.ResponseWriter, r *http.Request) {
	confirmer := notify.StaticConfirmer{Answer: r.URL.Query().Get("confirm") == "true"}
	if err := h.service.ClearAll(r.Context(), confirmer); err != nil {
		if errors.Is(err, ErrNotConfirmed) {
			w.Header().Set("Content-Type", "application/json")
			writeError(w, http.StatusConflict, rest.ErrorResponse{
				Error:   "Confirmation required",
				Details: "pass confirm=true to clear all transactions",
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportTransactions godoc
// @Summary Merge an exported transaction array into the ledger
// @Tags Transaction
// @Accept json
// @Produce json
// @Param confirm query bool true "Must be true"
// @Param transactions body []TransactionDTO true "Exported transactions"
// @Success 200 {object} ImportResultDTO
// @Failure 400 {object} rest.ErrorResponse "Payload shape invalid"
// @Failure 409 {object} rest.ErrorResponse "Confirmation missing"
// @Router /api/transactions/import [post]
func (h *Handler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Could not read request body"})
		return
	}

	confirmer := notify.StaticConfirmer{Answer: r.URL.Query().Get("confirm") == "true"}
	result, err := h.service.ImportMerge(r.Context(), payload, confirmer)
	if err != nil {
		var shapeErr *ShapeError
		if errors.As(err, &shapeErr) {
			writeError(w, http.StatusBadRequest, rest.ErrorResponse{
				Error:   "Import failed",
				Details: shapeErr.Error(),
			})
			return
		}
		if errors.Is(err, ErrNotConfirmed) {
			writeError(w, http.StatusConflict, rest.ErrorResponse{
				Error:   "Confirmation required",
				Details: "pass confirm=true to merge imported transactions",
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(ImportResultDTO{
		Imported:       result.Imported,
		RegeneratedIDs: result.RegeneratedIDs,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ExportTransactions godoc
// @Summary Download the ledger as a JSON file
// @Tags Transaction
// @Produce json
// @Success 200 {string} string "Verbatim stored collection"
// @Router /api/transactions/export [get]
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	file, err := h.service.Export(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	if _, err := w.Write(file.Payload); err != nil {
		log.Errorf("failed to write export payload: %v", err)
	}
}

func toDTO(tx Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        string(tx.EffectiveType()),
		Category:    tx.Category,
		Date:        tx.Date,
		Notes:       tx.Notes,
	}
}

func writeError(w http.ResponseWriter, status int, body rest.ErrorResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
