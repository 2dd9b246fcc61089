// backend/src/security/validation/content_scanner.go
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/username/propledger/backend/src/logger"
)

var (
	// Common XSS vectors. Contextual output encoding is the primary defense.
	xssPatternsRegex = regexp.MustCompile(
		`(?i)<script|onerror=|onmouseover=|onfocus=|onload=|javascript:|vbscript:|livescript:|mocha:|<iframe|<object|<embed|<applet|<style|<link|<img\s+src\s*=\s*['"]?\s*(javascript|data):`,
	)
	// Formula injection characters at the start of a string
	formulaInjectionPrefixRegex = regexp.MustCompile(`^[=+\-@\t\r]`)
)

func truncateForLog(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

// CheckXSSPatterns detects basic XSS patterns.
func CheckXSSPatterns(s, fieldName, contextID string) error {
	if xssPatternsRegex.MatchString(s) {
		errMsg := fmt.Sprintf("potential XSS pattern detected in field '%s'", fieldName)
		logger.L.Warn(errMsg, "contextID", contextID, "contentPreview", truncateForLog(s, 50))
		return fmt.Errorf("%w: %s", ErrValidationFailed, errMsg)
	}
	return nil
}

// CheckFormulaInjection detects if a string starts with characters common in CSV formula injection.
func CheckFormulaInjection(s, fieldName, contextID string) error {
	prefixToCheck := s
	if len(s) > 10 {
		prefixToCheck = s[:10]
	}
	if formulaInjectionPrefixRegex.MatchString(strings.TrimSpace(prefixToCheck)) {
		errMsg := fmt.Sprintf("potential formula injection pattern detected in field '%s'", fieldName)
		logger.L.Warn(errMsg, "contextID", contextID, "contentPreview", truncateForLog(s, 50))
		return fmt.Errorf("%w: %s", ErrValidationFailed, errMsg)
	}
	return nil
}

// ValidateInventoryName runs the checks applied to building names, addresses
// and unit numbers typed by users.
func ValidateInventoryName(s, fieldName, contextID string, required bool) (string, error) {
	cleaned := strings.TrimSpace(StripUnprintable(SanitizePlainText(s)))
	if required {
		if err := ValidateStringNotEmpty(cleaned, fieldName); err != nil {
			return "", err
		}
	}
	if err := ValidateStringMaxLength(cleaned, DefaultMaxStringLength, fieldName); err != nil {
		return "", err
	}
	// Decoding can turn "&lt;script" back into markup, so the cleaned value is checked too.
	for _, candidate := range []string{s, cleaned} {
		if err := CheckXSSPatterns(candidate, fieldName, contextID); err != nil {
			return "", err
		}
	}
	if err := CheckFormulaInjection(cleaned, fieldName, contextID); err != nil {
		return "", err
	}
	return cleaned, nil
}
