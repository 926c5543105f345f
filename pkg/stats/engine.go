package stats

import (
	"fmt"
	"time"

	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/pocketledger/pocketledger/pkg/transaction"
)

// The functions in this file are pure: they derive aggregates from a snapshot
// of the collection and never touch persistence.

// ComputeBalance sums income amounts and subtracts expense amounts. Records
// without a type are classified via the legacy category fallback.
func ComputeBalance(txs []transaction.Transaction) float64 {
	balance := 0.0
	for _, tx := range txs {
		if tx.EffectiveType() == transaction.TypeIncome {
			balance += tx.Amount
		} else {
			balance -= tx.Amount
		}
	}
	return balance
}

// ComputeMonthlySpend sums expense amounts dated within the given calendar
// month. Records with unparsable dates are skipped.
func ComputeMonthlySpend(txs []transaction.Transaction, year int, month time.Month) float64 {
	spend := 0.0
	for _, tx := range txs {
		if tx.EffectiveType() != transaction.TypeExpense {
			continue
		}
		date, err := utils.ParseDate(tx.Date)
		if err != nil {
			continue
		}
		if date.Year() == year && date.Month() == month {
			spend += tx.Amount
		}
	}
	return spend
}

// ComputeBudgetStatus relates monthly spend to the target. A target that is
// unset or non-positive means no status can be computed.
func ComputeBudgetStatus(monthlySpend, target float64) BudgetStatus {
	if target <= 0 {
		return BudgetStatus{State: BudgetNotSet}
	}
	remaining := target - monthlySpend
	if remaining < 0 {
		return BudgetStatus{State: BudgetOver, Amount: -remaining, Urgent: true}
	}
	return BudgetStatus{State: BudgetRemaining, Amount: remaining}
}

func (s BudgetStatus) String() string {
	switch s.State {
	case BudgetRemaining:
		return fmt.Sprintf("remaining %g", s.Amount)
	case BudgetOver:
		return fmt.Sprintf("over by %g", s.Amount)
	default:
		return "target not set"
	}
}

// ComputeTopCategory returns the most frequent category across all records,
// income and expense alike. Ties go to the category encountered first;
// an empty collection yields "none".
func ComputeTopCategory(txs []transaction.Transaction) string {
	counts := make(map[string]int, len(txs))
	order := make([]string, 0, len(txs))
	for _, tx := range txs {
		if counts[tx.Category] == 0 {
			order = append(order, tx.Category)
		}
		counts[tx.Category]++
	}

	top := "none"
	best := 0
	for _, category := range order {
		if counts[category] > best {
			top = category
			best = counts[category]
		}
	}
	return top
}

// ComputeDailySeries returns expense totals for the `days` consecutive dates
// ending at referenceDate inclusive, oldest first. Matching is exact calendar
// date equality on the stored date string.
func ComputeDailySeries(txs []transaction.Transaction, referenceDate time.Time, days int) []DailySpend {
	series := make([]DailySpend, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := utils.FormatDate(referenceDate.AddDate(0, 0, -i))
		total := 0.0
		for _, tx := range txs {
			if tx.EffectiveType() == transaction.TypeExpense && tx.Date == date {
				total += tx.Amount
			}
		}
		series = append(series, DailySpend{Date: date, Total: total})
	}
	return series
}

// ChartScale is the display scale for the trend chart: the series maximum
// with a floor of 10, so small values are not over-amplified and an empty
// week never divides by zero.
func ChartScale(series []DailySpend) float64 {
	max := 10.0
	for _, day := range series {
		if day.Total > max {
			max = day.Total
		}
	}
	return max
}
