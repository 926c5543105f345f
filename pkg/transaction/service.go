package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/pocketledger/internal/event_bus"
	"github.com/pocketledger/pocketledger/internal/notify"
	"github.com/pocketledger/pocketledger/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrNotConfirmed = errors.New("operation not confirmed")

// ShapeError reports the first record of an import payload that does not look
// like a transaction.
type ShapeError struct {
	Index  int
	Detail string
}

func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return e.Detail
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Detail)
}

// Input is a fully user-supplied transaction, before validation. Amount is
// kept as the raw string so the format rules can inspect it.
type Input struct {
	Description string
	Amount      string
	Type        Type
	Category    string
	Date        string
	Notes       string
}

// Patch carries the fields of an edit; nil fields are preserved unchanged.
type Patch struct {
	Description *string
	Amount      *string
	Type        *Type
	Category    *string
	Date        *string
	Notes       *string
}

// ListFilter mirrors the search/filter/sort controls of the transactions view.
type ListFilter struct {
	Search   string
	Category string
	Sort     string
}

type ImportResult struct {
	Imported       int
	RegeneratedIDs int
}

type ExportFile struct {
	Filename string
	Payload  []byte
}

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Transaction, error)
	Add(ctx context.Context, input Input) (Transaction, error)
	Update(ctx context.Context, id string, patch Patch) (Transaction, error)
	Remove(ctx context.Context, id string) error
	ClearAll(ctx context.Context, confirm notify.Confirmer) error
	ImportMerge(ctx context.Context, payload []byte, confirm notify.Confirmer) (ImportResult, error)
	Export(ctx context.Context) (ExportFile, error)
}

type ServiceImpl struct {
	repo      Repository
	validator *Validator
	clock     utils.Clock
	eventBus  *event_bus.EventBus
}

func NewService(repo Repository, validator *Validator, clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, validator: validator, clock: clock, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context, filter ListFilter) ([]Transaction, error) {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(filter.Search)
	filtered := make([]Transaction, 0, len(items))
	for _, tx := range items {
		if search != "" && !strings.Contains(strings.ToLower(tx.Description), search) {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		filtered = append(filtered, tx)
	}

	sortTransactions(filtered, filter.Sort)
	return filtered, nil
}

func sortTransactions(items []Transaction, mode string) {
	sort.SliceStable(items, func(i, j int) bool {
		switch mode {
		case "date-asc":
			return items[i].Date < items[j].Date
		case "amount-desc":
			return items[i].Amount > items[j].Amount
		case "amount-asc":
			return items[i].Amount < items[j].Amount
		case "category-asc":
			return items[i].Category < items[j].Category
		case "category-desc":
			return items[i].Category > items[j].Category
		default: // date-desc
			return items[i].Date > items[j].Date
		}
	})
}

func (s *ServiceImpl) Add(ctx context.Context, input Input) (Transaction, error) {
	if err := s.validator.ValidateDescription(input.Description); err != nil {
		return Transaction{}, err
	}
	if err := s.validator.ValidateAmount(input.Amount); err != nil {
		return Transaction{}, err
	}
	if input.Type != TypeIncome && input.Type != TypeExpense {
		return Transaction{}, &ValidationError{
			Field:   "type",
			Reason:  ReasonInvalidFormat,
			Message: "Type must be income or expense.",
		}
	}
	if err := s.validator.ValidateCategory(input.Category, input.Type); err != nil {
		return Transaction{}, err
	}

	date := input.Date
	if date == "" {
		date = utils.FormatDate(s.clock.Now())
	} else if _, err := utils.ParseDate(date); err != nil {
		return Transaction{}, &ValidationError{
			Field:   "date",
			Reason:  ReasonInvalidFormat,
			Message: "Date must be in YYYY-MM-DD format.",
		}
	}

	amount, err := strconv.ParseFloat(input.Amount, 64)
	if err != nil {
		return Transaction{}, &ValidationError{
			Field:   "amount",
			Reason:  ReasonInvalidFormat,
			Message: "Invalid amount. Please use a positive number (e.g., 10.50).",
		}
	}

	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		ID:          s.newID(items),
		Description: strings.TrimSpace(input.Description),
		Amount:      amount,
		Type:        input.Type,
		Category:    input.Category,
		Date:        date,
		Notes:       strings.TrimSpace(input.Notes),
	}
	items = append(items, tx)
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return Transaction{}, err
	}

	s.publish(ctx, event_bus.TransactionAdded, event_bus.TransactionEvent{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
	})
	return tx, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id string, patch Patch) (Transaction, error) {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return Transaction{}, err
	}
	idx := findTransaction(id, items)
	if idx == -1 {
		return Transaction{}, ErrTransactionNotFound
	}

	updated := items[idx]
	if patch.Description != nil {
		if err := s.validator.ValidateDescription(*patch.Description); err != nil {
			return Transaction{}, err
		}
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Amount != nil {
		if err := s.validator.ValidateAmount(*patch.Amount); err != nil {
			return Transaction{}, err
		}
		amount, err := strconv.ParseFloat(*patch.Amount, 64)
		if err != nil {
			return Transaction{}, &ValidationError{
				Field:   "amount",
				Reason:  ReasonInvalidFormat,
				Message: "Invalid amount. Please use a positive number (e.g., 10.50).",
			}
		}
		updated.Amount = amount
	}
	if patch.Type != nil {
		if *patch.Type != TypeIncome && *patch.Type != TypeExpense {
			return Transaction{}, &ValidationError{
				Field:   "type",
				Reason:  ReasonInvalidFormat,
				Message: "Type must be income or expense.",
			}
		}
		updated.Type = *patch.Type
	}
	if patch.Category != nil {
		if err := s.validator.ValidateCategory(*patch.Category, updated.EffectiveType()); err != nil {
			return Transaction{}, err
		}
		updated.Category = *patch.Category
	}
	if patch.Date != nil {
		if _, err := utils.ParseDate(*patch.Date); err != nil {
			return Transaction{}, &ValidationError{
				Field:   "date",
				Reason:  ReasonInvalidFormat,
				Message: "Date must be in YYYY-MM-DD format.",
			}
		}
		updated.Date = *patch.Date
	}
	if patch.Notes != nil {
		updated.Notes = strings.TrimSpace(*patch.Notes)
	}

	items[idx] = updated
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return Transaction{}, err
	}

	s.publish(ctx, event_bus.TransactionUpdated, event_bus.TransactionEvent{
		ID:          updated.ID,
		Description: updated.Description,
		Amount:      updated.Amount,
	})
	return updated, nil
}

// Remove deletes the matching record. Removing an absent id is a no-op, not
// an error.
func (s *ServiceImpl) Remove(ctx context.Context, id string) error {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	idx := findTransaction(id, items)
	if idx == -1 {
		log.Debugf("transaction %s not present, nothing to remove", id)
		return nil
	}
	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return err
	}

	s.publish(ctx, event_bus.TransactionDeleted, event_bus.TransactionEvent{
		ID:          removed.ID,
		Description: removed.Description,
		Amount:      removed.Amount,
	})
	return nil
}

// ClearAll wipes the whole ledger. It is irreversible, so the caller's
// Confirmer must answer yes before anything happens.
func (s *ServiceImpl) ClearAll(ctx context.Context, confirm notify.Confirmer) error {
	if !confirm.Confirm("Are you sure you want to clear ALL transactions? This action cannot be undone.") {
		return ErrNotConfirmed
	}
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.publish(ctx, event_bus.TransactionsCleared, event_bus.BulkEvent{})
	return nil
}

// ImportMerge validates the shape of an externally supplied payload, asks for
// confirmation with the incoming record count, and appends the records to the
// existing collection. Ids colliding with existing records (or repeated within
// the payload) are regenerated rather than kept as ambiguous duplicates.
func (s *ServiceImpl) ImportMerge(ctx context.Context, payload []byte, confirm notify.Confirmer) (ImportResult, error) {
	var raw []map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return ImportResult{}, &ShapeError{Index: -1, Detail: "data format must be an array of transactions"}
	}
	for i, record := range raw {
		if err := checkRecordShape(record); err != "" {
			return ImportResult{}, &ShapeError{Index: i, Detail: err}
		}
	}

	if !confirm.Confirm(fmt.Sprintf("Importing %d transactions. This will merge with your current data. Continue?", len(raw))) {
		return ImportResult{}, ErrNotConfirmed
	}

	var incoming []Transaction
	if err := json.Unmarshal(payload, &incoming); err != nil {
		return ImportResult{}, &ShapeError{Index: -1, Detail: "data format must be an array of transactions"}
	}

	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	seen := make(map[string]bool, len(items))
	for _, tx := range items {
		seen[tx.ID] = true
	}

	regenerated := 0
	for i := range incoming {
		incoming[i].Normalize()
		if seen[incoming[i].ID] {
			incoming[i].ID = uuid.NewString()
			regenerated++
		}
		seen[incoming[i].ID] = true
		items = append(items, incoming[i])
	}
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return ImportResult{}, err
	}
	if regenerated > 0 {
		log.Warnf("regenerated %d colliding transaction ids during import", regenerated)
	}

	s.publish(ctx, event_bus.TransactionsImported, event_bus.BulkEvent{Count: len(incoming)})
	return ImportResult{Imported: len(incoming), RegeneratedIDs: regenerated}, nil
}

func checkRecordShape(record map[string]any) string {
	id, ok := record["id"].(string)
	if !ok || id == "" {
		return "missing or empty id"
	}
	description, ok := record["description"].(string)
	if !ok || description == "" {
		return "missing or empty description"
	}
	if _, ok := record["amount"].(float64); !ok {
		return "missing or non-numeric amount"
	}
	date, ok := record["date"].(string)
	if !ok || date == "" {
		return "missing or empty date"
	}
	return ""
}

// Export hands back the verbatim stored payload with a dated filename.
func (s *ServiceImpl) Export(ctx context.Context) (ExportFile, error) {
	raw, err := s.repo.RawSnapshot(ctx)
	if err != nil {
		return ExportFile{}, err
	}
	return ExportFile{
		Filename: fmt.Sprintf("student_finance_export_%s.json", utils.FormatDate(s.clock.Now())),
		Payload:  []byte(raw),
	}, nil
}

// newID assigns a time-based token, unique within the collection. Two adds in
// the same millisecond get a random suffix instead of a duplicate token.
func (s *ServiceImpl) newID(items []Transaction) string {
	id := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	if findTransaction(id, items) == -1 {
		return id
	}
	return id + "-" + uuid.NewString()[:8]
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}

func findTransaction(id string, items []Transaction) int {
	for idx, tx := range items {
		if tx.ID == id {
			return idx
		}
	}
	return -1
}
