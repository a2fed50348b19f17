package inventory

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"stockd/internal/domain"
)

// Validators normalize raw caller input into typed, constrained values.
// They run before any store I/O; the store also re-validates on every
// entry point rather than trusting its callers.

var namePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// ValidateName trims the name and enforces length and character rules.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if len(name) < domain.NameMinLen {
		return "", &ValidationError{Field: "name", Reason: fmt.Sprintf("must have at least %d characters", domain.NameMinLen)}
	}
	if len(name) > domain.NameMaxLen {
		return "", &ValidationError{Field: "name", Reason: fmt.Sprintf("cannot exceed %d characters", domain.NameMaxLen)}
	}
	if !namePattern.MatchString(name) {
		return "", &ValidationError{Field: "name", Reason: "only letters, digits, spaces, hyphens and underscores are allowed"}
	}
	return name, nil
}

// ValidateQuantity parses an integer quantity and checks its range.
func ValidateQuantity(raw string) (int, error) {
	qty, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: "quantity", Reason: "must be a valid integer"}
	}
	if err := checkQuantityRange(qty); err != nil {
		return 0, err
	}
	return qty, nil
}

func checkQuantityRange(qty int) error {
	if qty < 0 || qty > domain.QuantityMax {
		return &ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be between 0 and %d", domain.QuantityMax)}
	}
	return nil
}

// ValidatePrice parses a decimal price, checks its range and rounds it to
// two places.
func ValidatePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "price", Reason: "must be a valid number"}
	}
	if price.IsNegative() || price.GreaterThan(domain.PriceMax) {
		return decimal.Zero, &ValidationError{Field: "price", Reason: fmt.Sprintf("must be between 0 and %s", domain.PriceMax)}
	}
	return price.Round(2), nil
}

// ValidateCategory returns the sentinel default for blank input, never an
// error in that case.
func ValidateCategory(raw string) (string, error) {
	category := strings.TrimSpace(raw)
	if category == "" {
		return domain.DefaultCategory, nil
	}
	if utf8.RuneCountInString(category) > domain.CategoryMaxLen {
		return "", &ValidationError{Field: "category", Reason: fmt.Sprintf("cannot exceed %d characters", domain.CategoryMaxLen)}
	}
	return category, nil
}

// ValidateDescription returns an empty string for blank input.
func ValidateDescription(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if desc == "" {
		return "", nil
	}
	if utf8.RuneCountInString(desc) > domain.DescMaxLen {
		return "", &ValidationError{Field: "description", Reason: fmt.Sprintf("cannot exceed %d characters", domain.DescMaxLen)}
	}
	return desc, nil
}

// ValidateSupplier returns the sentinel default for blank input.
func ValidateSupplier(raw string) (string, error) {
	supplier := strings.TrimSpace(raw)
	if supplier == "" {
		return domain.DefaultSupplier, nil
	}
	if utf8.RuneCountInString(supplier) > domain.SupplierMaxLen {
		return "", &ValidationError{Field: "supplier", Reason: fmt.Sprintf("cannot exceed %d characters", domain.SupplierMaxLen)}
	}
	return supplier, nil
}
