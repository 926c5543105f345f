package transaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/event_bus"
	"github.com/pocketledger/pocketledger/internal/storage"
	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/stretchr/testify/assert"
)

// Test setup helper
func setupHandlerTest(t *testing.T) *Handler {
	store := storage.NewMemoryStore()
	repo := NewRepository(store)
	clock := &utils.MockClock{FixedNow: time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)}
	service := NewService(repo, NewValidator(PolicyWhitespaceDuplicate), clock, event_bus.NewEventBus())
	return NewHandler(service)
}

// Helper to add test transactions
func addTestTransactions(t *testing.T, handler *Handler, inputs []InputDTO) []TransactionDTO {
	created := make([]TransactionDTO, 0, len(inputs))
	for _, input := range inputs {
		body, err := json.Marshal(input)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		var dto TransactionDTO
		err = json.NewDecoder(w.Body).Decode(&dto)
		assert.NoError(t, err)
		created = append(created, dto)
	}
	return created
}

func TestCreateTransaction_Success(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	input := InputDTO{
		Description: "Lunch at cafeteria",
		Amount:      "12.50",
		Type:        "expense",
		Category:    "Food",
		Date:        "2024-05-15",
	}
	body, err := json.Marshal(input)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Call the handler
	handler.CreateTransaction(w, req)

	// Verify response
	assert.Equal(t, http.StatusCreated, w.Code)

	var dto TransactionDTO
	err = json.NewDecoder(w.Body).Decode(&dto)
	assert.NoError(t, err)
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "Lunch at cafeteria", dto.Description)
	assert.Equal(t, 12.50, dto.Amount)
	assert.Equal(t, "expense", dto.Type)
}

func TestCreateTransaction_ValidationError(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	// Malformed amount should surface as a 400 with the failing field
	input := InputDTO{
		Description: "Lunch at cafeteria",
		Amount:      "00.50",
		Type:        "expense",
		Category:    "Food",
	}
	body, err := json.Marshal(input)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	// Call the handler
	handler.CreateTransaction(w, req)

	// Verify response
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	err = json.NewDecoder(w.Body).Decode(&errResponse)
	assert.NoError(t, err)
	assert.Contains(t, errResponse.Details, "amount")
}

func TestListTransactions_WithFilter(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)
	addTestTransactions(t, handler, []InputDTO{
		{Description: "Bus ticket", Amount: "2", Type: "expense", Category: "Transport", Date: "2024-05-10"},
		{Description: "Textbook bundle", Amount: "80", Type: "expense", Category: "Books", Date: "2024-05-12"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?q=bus", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.ListTransactions(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var dtos []TransactionDTO
	err := json.NewDecoder(w.Body).Decode(&dtos)
	assert.NoError(t, err)
	assert.Len(t, dtos, 1)
	assert.Equal(t, "Bus ticket", dtos[0].Description)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	body := []byte(`{"amount":"20"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/transactions/missing", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	w := httptest.NewRecorder()

	// Call the handler
	handler.UpdateTransaction(w, req)

	// Verify response
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTransaction(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)
	created := addTestTransactions(t, handler, []InputDTO{
		{Description: "Bus ticket", Amount: "2", Type: "expense", Category: "Transport", Date: "2024-05-10"},
	})

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/transactions/%s", created[0].ID), nil)
	req = mux.SetURLVars(req, map[string]string{"id": created[0].ID})
	w := httptest.NewRecorder()

	// Call the handler
	handler.DeleteTransaction(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Verify the transaction is gone
	getReq := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	getW := httptest.NewRecorder()
	handler.ListTransactions(getW, getReq)

	var dtos []TransactionDTO
	err := json.NewDecoder(getW.Body).Decode(&dtos)
	assert.NoError(t, err)
	assert.Empty(t, dtos)
}

func TestClearTransactions_RequiresConfirm(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)
	addTestTransactions(t, handler, []InputDTO{
		{Description: "Bus ticket", Amount: "2", Type: "expense", Category: "Transport", Date: "2024-05-10"},
	})

	// Without confirm=true the ledger must stay intact
	req := httptest.NewRequest(http.MethodDelete, "/api/transactions", nil)
	w := httptest.NewRecorder()
	handler.ClearTransactions(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// With confirm=true the ledger is wiped
	req = httptest.NewRequest(http.MethodDelete, "/api/transactions?confirm=true", nil)
	w = httptest.NewRecorder()
	handler.ClearTransactions(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	getW := httptest.NewRecorder()
	handler.ListTransactions(getW, getReq)

	var dtos []TransactionDTO
	err := json.NewDecoder(getW.Body).Decode(&dtos)
	assert.NoError(t, err)
	assert.Empty(t, dtos)
}

func TestImportTransactions_ShapeError(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)

	payload := []byte(`[{"id":"a1","description":"Snacks","date":"2024-05-01"}]`)
	req := httptest.NewRequest(http.MethodPost, "/api/transactions/import?confirm=true", bytes.NewBuffer(payload))
	w := httptest.NewRecorder()

	// Call the handler
	handler.ImportTransactions(w, req)

	// Verify response
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	err := json.NewDecoder(w.Body).Decode(&errResponse)
	assert.NoError(t, err)
	assert.Contains(t, errResponse.Details, "amount")
}

func TestExportTransactions(t *testing.T) {
	// Setup
	handler := setupHandlerTest(t)
	addTestTransactions(t, handler, []InputDTO{
		{Description: "Bus ticket", Amount: "2", Type: "expense", Category: "Transport", Date: "2024-05-10"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/export", nil)
	w := httptest.NewRecorder()

	// Call the handler
	handler.ExportTransactions(w, req)

	// Verify response
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "student_finance_export_2024-05-15.json")

	var exported []TransactionDTO
	err := json.NewDecoder(w.Body).Decode(&exported)
	assert.NoError(t, err)
	assert.Len(t, exported, 1)
}
