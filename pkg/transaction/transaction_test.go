package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_EffectiveType(t *testing.T) {
	t.Run("should prefer the explicit type", func(t *testing.T) {
		tx := Transaction{Type: TypeIncome, Category: "Food"}
		assert.Equal(t, TypeIncome, tx.EffectiveType())
	})

	t.Run("should fall back to the income category for legacy records", func(t *testing.T) {
		assert.Equal(t, TypeIncome, Transaction{Category: "Income"}.EffectiveType())
		assert.Equal(t, TypeIncome, Transaction{Category: "income"}.EffectiveType())
	})

	t.Run("should default legacy records to expense", func(t *testing.T) {
		assert.Equal(t, TypeExpense, Transaction{Category: "Food"}.EffectiveType())
		assert.Equal(t, TypeExpense, Transaction{}.EffectiveType())
	})
}

func TestTransaction_Normalize(t *testing.T) {
	t.Run("should fill a missing type and report the change", func(t *testing.T) {
		tx := Transaction{Category: "Income"}

		changed := tx.Normalize()

		assert.True(t, changed)
		assert.Equal(t, TypeIncome, tx.Type)
	})

	t.Run("should leave typed records alone", func(t *testing.T) {
		tx := Transaction{Type: TypeExpense, Category: "Food"}

		changed := tx.Normalize()

		assert.False(t, changed)
		assert.Equal(t, TypeExpense, tx.Type)
	})
}

func TestCategoriesFor(t *testing.T) {
	assert.Contains(t, CategoriesFor(TypeExpense), "Food")
	assert.Contains(t, CategoriesFor(TypeIncome), "Salary")
	assert.NotContains(t, CategoriesFor(TypeIncome), "Food")
}
