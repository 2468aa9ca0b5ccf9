package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SEC identifiers are small and strictly shaped; validate them up front so
// malformed tool arguments never reach the network.

const maxCIKDigits = 10

// NormalizeCIK validates a central index key and returns it zero-padded to
// ten digits, the form EDGAR endpoints expect.
func NormalizeCIK(cik string) (string, error) {
	trimmed := strings.TrimSpace(cik)
	if trimmed == "" {
		return "", fmt.Errorf("cik is empty")
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return "", fmt.Errorf("cik %q contains non-digit characters", cik)
		}
	}
	if len(trimmed) > maxCIKDigits {
		return "", fmt.Errorf("cik %q is longer than %d digits", cik, maxCIKDigits)
	}
	return strings.Repeat("0", maxCIKDigits-len(trimmed)) + trimmed, nil
}

// IsCIK reports whether the identifier looks like a CIK rather than a ticker.
func IsCIK(identifier string) bool {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ValidateTicker checks a ticker symbol: 1-10 characters, uppercase letters
// and digits, with an optional dot or hyphen share-class suffix (BRK.B, BF-B).
func ValidateTicker(ticker string) error {
	trimmed := strings.TrimSpace(ticker)
	if trimmed == "" {
		return fmt.Errorf("ticker is empty")
	}
	if len(trimmed) > 10 {
		return fmt.Errorf("ticker %q is too long", ticker)
	}
	for i, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case (r == '.' || r == '-') && i > 0 && i < len(trimmed)-1:
		default:
			return fmt.Errorf("ticker %q contains invalid character %q", ticker, r)
		}
	}
	return nil
}

// ValidateIdentifier accepts either a ticker or a CIK.
func ValidateIdentifier(identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return fmt.Errorf("identifier is empty")
	}
	if IsCIK(identifier) {
		_, err := NormalizeCIK(identifier)
		return err
	}
	return ValidateTicker(strings.ToUpper(strings.TrimSpace(identifier)))
}

// ValidateDate checks a YYYY-MM-DD calendar date.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date %q is not in YYYY-MM-DD format", date)
	}
	return nil
}

// ValidateDateRange checks that both dates parse and start does not follow end.
// Either side may be empty (open-ended range).
func ValidateDateRange(start, end string) error {
	if start != "" {
		if err := ValidateDate(start); err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
	}
	if end != "" {
		if err := ValidateDate(end); err != nil {
			return fmt.Errorf("end_date: %w", err)
		}
	}
	if start != "" && end != "" && start > end {
		return fmt.Errorf("start_date %q is after end_date %q", start, end)
	}
	return nil
}

// ValidateForm checks a filing form code such as 10-K, 10-Q, 8-K, 4, S-1/A.
func ValidateForm(form string) error {
	trimmed := strings.TrimSpace(form)
	if trimmed == "" {
		return fmt.Errorf("form is empty")
	}
	if len(trimmed) > 12 {
		return fmt.Errorf("form %q is too long", form)
	}
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '/':
		default:
			return fmt.Errorf("form %q contains invalid character %q", form, r)
		}
	}
	return nil
}

// ValidateAccessionNumber checks the dashed 0000000000-00-000000 shape.
func ValidateAccessionNumber(accession string) error {
	trimmed := strings.TrimSpace(accession)
	parts := strings.Split(trimmed, "-")
	if len(parts) != 3 || len(parts[0]) != 10 || len(parts[1]) != 2 || len(parts[2]) != 6 {
		return fmt.Errorf("accession number %q is not in 0000000000-00-000000 format", accession)
	}
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return fmt.Errorf("accession number %q is not in 0000000000-00-000000 format", accession)
			}
		}
	}
	return nil
}
