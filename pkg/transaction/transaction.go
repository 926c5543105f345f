package transaction

import "strings"

// Type determines whether a transaction's amount increases or decreases the
// balance. The amount itself is always positive.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction is a single recorded money movement.
type Transaction struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        Type    `json:"type,omitempty"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

var ExpenseCategories = []string{"Food", "Books", "Transport", "Entertainment", "Fees", "Other"}
var IncomeCategories = []string{"Allowance", "Salary", "Part-time", "Investment", "Other"}

func CategoriesFor(t Type) []string {
	if t == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// EffectiveType classifies the record even when the stored type is absent.
// Legacy records carried the classification in the category instead: a
// category of "Income" (case-insensitive) means income, anything else expense.
func (t Transaction) EffectiveType() Type {
	if t.Type == TypeIncome || t.Type == TypeExpense {
		return t.Type
	}
	if strings.EqualFold(t.Category, "income") {
		return TypeIncome
	}
	return TypeExpense
}

// Normalize fills a missing type from the legacy fallback rule and reports
// whether the record was changed.
func (t *Transaction) Normalize() bool {
	if t.Type == TypeIncome || t.Type == TypeExpense {
		return false
	}
	t.Type = t.EffectiveType()
	return true
}
