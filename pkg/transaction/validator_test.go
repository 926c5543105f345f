package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateAmount(t *testing.T) {
	v := NewValidator(PolicyWhitespaceDuplicate)

	valid := []string{"0.5", "0.50", "10", "10.50", "1234.99", "0.01"}
	for _, input := range valid {
		t.Run("should accept "+input, func(t *testing.T) {
			assert.NoError(t, v.ValidateAmount(input))
		})
	}

	invalid := map[string]FailureReason{
		"00.50":  ReasonInvalidFormat,
		"01":     ReasonInvalidFormat,
		"-5":     ReasonInvalidFormat,
		"10.505": ReasonInvalidFormat,
		"abc":    ReasonInvalidFormat,
		"":       ReasonInvalidFormat,
		"0":      ReasonNonPositive,
		"0.00":   ReasonNonPositive,
	}
	for input, reason := range invalid {
		t.Run("should reject "+input, func(t *testing.T) {
			err := v.ValidateAmount(input)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "amount", validationErr.Field)
			assert.Equal(t, reason, validationErr.Reason)
		})
	}
}

func TestValidator_ValidateDescription(t *testing.T) {
	t.Run("should accept a plain description", func(t *testing.T) {
		v := NewValidator(PolicyWhitespaceDuplicate)
		assert.NoError(t, v.ValidateDescription("Food"))
	})

	t.Run("should reject leading whitespace", func(t *testing.T) {
		v := NewValidator(PolicyWhitespaceDuplicate)

		err := v.ValidateDescription(" Food")

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, ReasonEmptyOrWhitespace, validationErr.Reason)
	})

	t.Run("should reject trailing whitespace", func(t *testing.T) {
		v := NewValidator(PolicyWhitespaceDuplicate)

		err := v.ValidateDescription("Food ")

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, ReasonEmptyOrWhitespace, validationErr.Reason)
	})

	t.Run("should reject empty and whitespace-only input", func(t *testing.T) {
		v := NewValidator(PolicyWhitespaceDuplicate)

		for _, input := range []string{"", "   "} {
			err := v.ValidateDescription(input)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, ReasonEmptyOrWhitespace, validationErr.Reason)
		}
	})

	t.Run("should reject consecutive duplicate words", func(t *testing.T) {
		v := NewValidator(PolicyWhitespaceDuplicate)

		err := v.ValidateDescription("Food Food")

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, ReasonDuplicateWord, validationErr.Reason)
	})

	t.Run("should reject duplicate words regardless of case", func(t *testing.T) {
		v := NewValidator(PolicyWhitespaceDuplicate)

		err := v.ValidateDescription("Lunch lunch at campus")

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, ReasonDuplicateWord, validationErr.Reason)
	})

	t.Run("should allow non-consecutive repeats", func(t *testing.T) {
		v := NewValidator(PolicyWhitespaceDuplicate)
		assert.NoError(t, v.ValidateDescription("Bus to campus and bus back"))
	})

	t.Run("strict policy should enforce charset and length", func(t *testing.T) {
		v := NewValidator(PolicyStrictCharset)

		assert.NoError(t, v.ValidateDescription("Lunch at cafeteria, 2nd floor"))
		assert.Error(t, v.ValidateDescription("ab"))
		assert.Error(t, v.ValidateDescription("Caffè"))
		assert.Error(t, v.ValidateDescription(""))
	})
}

func TestValidator_ValidateCategory(t *testing.T) {
	v := NewValidator(PolicyWhitespaceDuplicate)

	t.Run("should accept fixed vocabulary per type", func(t *testing.T) {
		assert.NoError(t, v.ValidateCategory("Food", TypeExpense))
		assert.NoError(t, v.ValidateCategory("Salary", TypeIncome))
	})

	t.Run("should reject empty category", func(t *testing.T) {
		err := v.ValidateCategory("", TypeExpense)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, ReasonMissing, validationErr.Reason)
	})

	t.Run("should tolerate well-formed free text", func(t *testing.T) {
		assert.NoError(t, v.ValidateCategory("Income", TypeExpense))
		assert.NoError(t, v.ValidateCategory("Side-projects", TypeIncome))
	})

	t.Run("should reject malformed free text", func(t *testing.T) {
		err := v.ValidateCategory("Caf3!", TypeExpense)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, ReasonInvalidFormat, validationErr.Reason)
	})
}
