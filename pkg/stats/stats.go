package stats

// DailySpend is one point of the 7-day trend chart.
type DailySpend struct {
	Date  string
	Total float64
}

type BudgetState string

const (
	BudgetNotSet    BudgetState = "not_set"
	BudgetRemaining BudgetState = "remaining"
	BudgetOver      BudgetState = "over"
)

// BudgetStatus describes how the current month's spend relates to the
// configured target. Amount is the remaining headroom or the overrun,
// depending on State.
type BudgetStatus struct {
	State  BudgetState
	Amount float64
	Urgent bool
}

// Summary is everything the dashboard needs, derived on demand from the full
// transaction collection.
type Summary struct {
	Balance      float64
	MonthlySpend float64
	Budget       BudgetStatus
	TopCategory  string
	Daily        []DailySpend
	ChartScale   float64
	Currency     string
}
