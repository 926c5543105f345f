package stats

import (
	"encoding/json"
	"net/http"

	"github.com/pocketledger/pocketledger/pkg/currency"
)

type DailySpendDTO struct {
	Date    string  `json:"date"`
	Total   float64 `json:"total"`
	Display string  `json:"display"`
}

type BudgetStatusDTO struct {
	State   string  `json:"state"`
	Amount  float64 `json:"amount"`
	Display string  `json:"display"`
	Urgent  bool    `json:"urgent"`
}

type SummaryDTO struct {
	Balance             float64         `json:"balance"`
	BalanceDisplay      string          `json:"balanceDisplay"`
	MonthlySpend        float64         `json:"monthlySpend"`
	MonthlySpendDisplay string          `json:"monthlySpendDisplay"`
	Budget              BudgetStatusDTO `json:"budget"`
	TopCategory         string          `json:"topCategory"`
	Daily               []DailySpendDTO `json:"daily"`
	ChartScale          float64         `json:"chartScale"`
	Currency            string          `json:"currency"`
}

type StatsHandler struct {
	statsService       StatsService
	csvSummaryRenderer SummaryRenderer
}

func NewStatsHandler(statsService StatsService, csvSummaryRenderer SummaryRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvSummaryRenderer}
}

// GetSummary godoc
// @Summary Dashboard aggregates
// @Description Balance, monthly spend, budget status, top category and the 7-day trend, recomputed from the full ledger
// @Tags Stats
// @Produce json
// @Success 200 {object} SummaryDTO
// @Router /api/stats [get]
func (handler *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := handler.statsService.GetSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvSummaryRenderer.RenderSummary(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(convertToJsonResponse(&summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func convertToJsonResponse(summary *Summary) *SummaryDTO {
	daily := make([]DailySpendDTO, 0, len(summary.Daily))
	for _, day := range summary.Daily {
		daily = append(daily, DailySpendDTO{
			Date:    day.Date,
			Total:   day.Total,
			Display: currency.Format(day.Total, summary.Currency),
		})
	}

	return &SummaryDTO{
		Balance:             summary.Balance,
		BalanceDisplay:      currency.Format(summary.Balance, summary.Currency),
		MonthlySpend:        summary.MonthlySpend,
		MonthlySpendDisplay: currency.Format(summary.MonthlySpend, summary.Currency),
		Budget: BudgetStatusDTO{
			State:   string(summary.Budget.State),
			Amount:  summary.Budget.Amount,
			Display: summary.Budget.String(),
			Urgent:  summary.Budget.Urgent,
		},
		TopCategory: summary.TopCategory,
		Daily:       daily,
		ChartScale:  summary.ChartScale,
		Currency:    summary.Currency,
	}
}
