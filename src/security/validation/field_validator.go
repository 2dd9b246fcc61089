// backend/src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/models"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	DefaultMaxStringLength = 255
	MaxDescriptionLength   = 1024
	MaxUsernameLength      = 50
	MinPasswordLength      = 8
	MaxIDsPerRequest       = 500
)

// --- String Validators ---

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateStringRegex checks if a string matches a given regex pattern.
func ValidateStringRegex(s string, pattern *regexp.Regexp, fieldName, formatDescription string) error {
	if !pattern.MatchString(s) {
		return fmt.Errorf("%w: %s ('%s') is not in the expected format (%s)", ErrValidationFailed, fieldName, s, formatDescription)
	}
	return nil
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateUsername allows letters, digits, dots, dashes and underscores.
func ValidateUsername(s string) error {
	trimmed := strings.TrimSpace(s)
	if err := ValidateStringNotEmpty(trimmed, "username"); err != nil {
		return err
	}
	if err := ValidateStringMaxLength(trimmed, MaxUsernameLength, "username"); err != nil {
		return err
	}
	return ValidateStringRegex(trimmed, usernameRegex, "username", "letters, digits, '.', '-' or '_'")
}

func ValidatePassword(s string) error {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidationFailed, MinPasswordLength)
	}
	return nil
}

// --- Numeric Validators ---

// ValidateIDString parses a positive database identifier. An empty string is
// reported as (0, nil) so optional query parameters can be passed straight in.
func ValidateIDString(s, fieldName string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, nil
	}
	val, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s ('%s') is not a valid integer: %v", ErrValidationFailed, fieldName, s, err)
	}
	if val <= 0 {
		logger.L.Warn("Non-positive identifier rejected", "field", fieldName, "value", val)
		return 0, fmt.Errorf("%w: %s must be positive", ErrValidationFailed, fieldName)
	}
	return val, nil
}

// ValidateIDList checks a batch of identifiers sent in a request body.
func ValidateIDList(ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids cannot be empty", ErrValidationFailed)
	}
	if len(ids) > MaxIDsPerRequest {
		return fmt.Errorf("%w: at most %d ids per request, got %d", ErrValidationFailed, MaxIDsPerRequest, len(ids))
	}
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: invalid id %d", ErrValidationFailed, id)
		}
	}
	return nil
}

// --- Date Validator ---

// ValidateDateString checks an optional "YYYY-MM-DD" date, as used by the
// transaction and summary filters.
func ValidateDateString(s, fieldName string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", nil
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %s ('%s') is not a valid date (expected YYYY-MM-DD): %v", ErrValidationFailed, fieldName, s, err)
	}
	return t.Format("2006-01-02"), nil
}

// ValidateDateRange requires from <= to when both are set.
func ValidateDateRange(from, to string) error {
	if from != "" && to != "" && from > to {
		return fmt.Errorf("%w: 'from' (%s) is after 'to' (%s)", ErrValidationFailed, from, to)
	}
	return nil
}

// --- Domain Validators ---

// ValidateTransactionType accepts an empty value (no override) or one of the
// canonical movement types.
func ValidateTransactionType(s string) (models.TransactionType, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	t, ok := models.ParseTransactionType(s)
	if !ok {
		return "", fmt.Errorf("%w: tipo must be '%s' or '%s'", ErrValidationFailed, models.TipoIngreso, models.TipoGasto)
	}
	return t, nil
}

func ValidateCategory(s string) (models.Category, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", nil
	}
	if !models.IsCategory(trimmed) {
		return "", fmt.Errorf("%w: unknown categoria '%s'", ErrValidationFailed, s)
	}
	return models.Category(trimmed), nil
}
