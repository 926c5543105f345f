package transaction

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// FailureReason identifies which validation rule rejected the input.
type FailureReason string

const (
	ReasonEmptyOrWhitespace FailureReason = "empty_or_whitespace"
	ReasonDuplicateWord     FailureReason = "duplicate_word"
	ReasonInvalidFormat     FailureReason = "invalid_format"
	ReasonNonPositive       FailureReason = "non_positive"
	ReasonMissing           FailureReason = "missing"
)

// ValidationError carries the failed field, the rule that failed, and a
// message suitable for showing to the user as-is.
type ValidationError struct {
	Field   string
	Reason  FailureReason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DescriptionPolicy selects which of the two historical description rules is
// enforced. The policies are mutually exclusive.
type DescriptionPolicy string

const (
	// PolicyWhitespaceDuplicate rejects inputs with leading/trailing
	// whitespace and consecutive repeated words. This is the default.
	PolicyWhitespaceDuplicate DescriptionPolicy = "whitespace-duplicate"
	// PolicyStrictCharset enforces 3-50 characters limited to letters,
	// digits, spaces, commas, periods and hyphens.
	PolicyStrictCharset DescriptionPolicy = "strict-charset"
)

var (
	// No superfluous leading zero: "0.50" is fine, "00.50" and "01" are not.
	amountPattern     = regexp.MustCompile(`^(0|[1-9][0-9]*)(\.[0-9]{1,2})?$`)
	strictDescPattern = regexp.MustCompile(`^[A-Za-z0-9\s,.\-]{3,50}$`)
	freeTextCategory  = regexp.MustCompile(`^[A-Za-z][A-Za-z \-]*$`)
)

// Validator holds the pure validation rules gating every mutation.
type Validator struct {
	descriptionPolicy DescriptionPolicy
}

func NewValidator(policy DescriptionPolicy) *Validator {
	if policy != PolicyStrictCharset {
		policy = PolicyWhitespaceDuplicate
	}
	return &Validator{descriptionPolicy: policy}
}

func (v *Validator) ValidateDescription(s string) error {
	if v.descriptionPolicy == PolicyStrictCharset {
		if !strictDescPattern.MatchString(s) {
			return &ValidationError{
				Field:   "description",
				Reason:  ReasonInvalidFormat,
				Message: "Invalid description. Use 3-50 characters (alphanumeric).",
			}
		}
		return nil
	}

	// The raw input must already equal its trimmed form and contain at
	// least one character; trimming is for storage, never to repair input.
	if strings.TrimSpace(s) == "" || s != strings.TrimSpace(s) {
		return &ValidationError{
			Field:   "description",
			Reason:  ReasonEmptyOrWhitespace,
			Message: "Description must not be empty or begin/end with whitespace.",
		}
	}
	words := strings.Fields(strings.ToLower(s))
	for i := 1; i < len(words); i++ {
		prev := strings.Trim(words[i-1], ",.-")
		curr := strings.Trim(words[i], ",.-")
		if curr != "" && curr == prev {
			return &ValidationError{
				Field:   "description",
				Reason:  ReasonDuplicateWord,
				Message: fmt.Sprintf("Description repeats the word %q.", curr),
			}
		}
	}
	return nil
}

func (v *Validator) ValidateAmount(s string) error {
	if !amountPattern.MatchString(s) {
		return &ValidationError{
			Field:   "amount",
			Reason:  ReasonInvalidFormat,
			Message: "Invalid amount. Please use a positive number (e.g., 10.50).",
		}
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value <= 0 {
		return &ValidationError{
			Field:   "amount",
			Reason:  ReasonNonPositive,
			Message: "Amount must be greater than zero.",
		}
	}
	return nil
}

func (v *Validator) ValidateCategory(c string, t Type) error {
	if c == "" {
		return &ValidationError{
			Field:   "category",
			Reason:  ReasonMissing,
			Message: "Please select a category.",
		}
	}
	if slices.Contains(CategoriesFor(t), c) {
		return nil
	}
	// Free-text entries (including legacy "Income" records) are tolerated
	// as long as they stick to letters, spaces and hyphens.
	if !freeTextCategory.MatchString(c) {
		return &ValidationError{
			Field:   "category",
			Reason:  ReasonInvalidFormat,
			Message: "Category may only contain letters, spaces and hyphens.",
		}
	}
	return nil
}
