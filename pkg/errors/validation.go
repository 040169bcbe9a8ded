package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// MaxResultsLimit caps the number of covers a single run may request.
const MaxResultsLimit = 10_000_000

// ParseMaxResults parses and validates a result count given on the command line.
func ParseMaxResults(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, Wrap(ErrCodeInvalidInput, err, "maxResults must be an integer, got %q", s)
	}
	if err := ValidateMaxResults(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateMaxResults checks that a result count is within range.
func ValidateMaxResults(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "maxResults must be at least 1, got %d", n)
	}
	if n > MaxResultsLimit {
		return New(ErrCodeInvalidInput, "maxResults too large (max %d)", MaxResultsLimit)
	}
	return nil
}

// ParseOnlyMinimal parses the onlyNonRedundant flag. It accepts the spellings
// understood by strconv.ParseBool.
func ParseOnlyMinimal(s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, Wrap(ErrCodeInvalidInput, err, "onlyNonRedundant must be true or false, got %q", s)
	}
	return b, nil
}

// ValidateInterval checks a statistics interval length. Zero selects the default.
func ValidateInterval(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "interval cannot be negative, got %d", n)
	}
	return nil
}

// ValidateOutputName validates the base name a batch run writes its table to.
//
// Validation rules:
//   - Name cannot be empty
//   - No null bytes or control characters
//   - Must not end with a path separator
func ValidateOutputName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "output name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output name contains invalid control characters")
		}
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, "\\") {
		return New(ErrCodeInvalidInput, "output name must name a file, not a directory")
	}
	return nil
}
