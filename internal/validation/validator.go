// =============================================================================
// Smart Bookshop POS - Validation Engine
// =============================================================================
//
// This module validates operator-entered values before they reach a store.
// It covers:
//   - Required field checks
//   - Category enumeration
//   - Price parsing (positive decimal)
//   - Password change rules
//
// VALIDATION STRATEGY:
//   Fields are checked in a fixed order (title, sku, category, price) and the
//   first violation is returned. Nothing is mutated here; the stores call the
//   validator before touching their state, which keeps every mutation
//   all-or-nothing.
//
//   Uniqueness of the SKU needs the catalog contents, so it is checked by the
//   catalog store through CheckUnique rather than inside ValidateBook.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartbookshop/bookshop-pos/internal/types"
)

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks book and credential input.
type Validator struct {
	options ValidationOptions
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// Categories is the set of accepted categories.
	// Default: types.Categories
	Categories []types.Category
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		Categories: types.Categories,
	}
}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{options: DefaultValidationOptions()}
}

// NewValidatorWithOptions creates a new Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// =============================================================================
// BOOK VALIDATION
// =============================================================================

// ValidateBook validates and converts raw input into a BookRecord.
//
// PARAMETERS:
//   - input: The raw field values. Surrounding whitespace is ignored.
//
// RETURNS:
//   - The normalized BookRecord.
//   - A *types.ValidationError for the first field that fails.
func (v *Validator) ValidateBook(input types.BookInput) (types.BookRecord, error) {
	title := strings.TrimSpace(input.Title)
	sku := strings.TrimSpace(input.SKU)
	category := strings.TrimSpace(input.Category)
	price := strings.TrimSpace(input.Price)

	if err := validateRequired("title", title); err != nil {
		return types.BookRecord{}, err
	}
	if err := validateRequired("sku", sku); err != nil {
		return types.BookRecord{}, err
	}
	if err := v.validateCategory(category); err != nil {
		return types.BookRecord{}, err
	}
	amount, err := v.validatePrice(price)
	if err != nil {
		return types.BookRecord{}, err
	}

	return types.BookRecord{
		Title:    title,
		SKU:      sku,
		Category: types.Category(category),
		Price:    amount,
	}, nil
}

// ValidateRecord re-checks an already typed record, for example one decoded
// from the inventory file.
func (v *Validator) ValidateRecord(record types.BookRecord) error {
	_, err := v.ValidateBook(types.BookInput{
		Title:    record.Title,
		SKU:      record.SKU,
		Category: string(record.Category),
		Price:    record.Price.String(),
	})
	return err
}

// CheckUnique rejects sku if it is already used by a record other than the
// one identified by exclude. Pass an empty exclude when adding.
func CheckUnique(sku, exclude string, records []types.BookRecord) error {
	if sku == exclude {
		return nil
	}
	for _, r := range records {
		if r.SKU == sku {
			return &types.ValidationError{
				Field:   "sku",
				Value:   sku,
				Rule:    "unique",
				Message: fmt.Sprintf("SKU '%s' already exists", sku),
			}
		}
	}
	return nil
}

// =============================================================================
// CREDENTIAL VALIDATION
// =============================================================================

// ValidatePasswordChange checks the new password pair.
// The current password is checked by the credential store, not here.
func ValidatePasswordChange(newPassword, confirm string) error {
	if newPassword == "" {
		return &types.ValidationError{
			Field:   "new_password",
			Rule:    "required",
			Message: "new password cannot be empty",
		}
	}
	if newPassword != confirm {
		return &types.ValidationError{
			Field:   "confirm_password",
			Rule:    "match",
			Message: "passwords do not match",
		}
	}
	return nil
}

// =============================================================================
// FIELD VALIDATORS
// =============================================================================

// validateRequired rejects empty values.
func validateRequired(field, value string) error {
	if value == "" {
		return &types.ValidationError{
			Field:   field,
			Value:   value,
			Rule:    "required",
			Message: fmt.Sprintf("%s is required", field),
		}
	}
	return nil
}

// validateCategory checks value against the configured category set.
func (v *Validator) validateCategory(value string) error {
	for _, c := range v.options.Categories {
		if string(c) == value {
			return nil
		}
	}

	names := make([]string, len(v.options.Categories))
	for i, c := range v.options.Categories {
		names[i] = string(c)
	}
	return &types.ValidationError{
		Field:   "category",
		Value:   value,
		Rule:    "category",
		Message: fmt.Sprintf("category must be one of %s", strings.Join(names, ", ")),
	}
}

// validatePrice parses value as a positive decimal. Any number of fractional
// digits is kept; rounding to cents happens only when amounts are displayed.
func (v *Validator) validatePrice(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, &types.ValidationError{
			Field:   "price",
			Value:   value,
			Rule:    "required",
			Message: "price is required",
		}
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &types.ValidationError{
			Field:   "price",
			Value:   value,
			Rule:    "decimal",
			Message: fmt.Sprintf("'%s' is not a valid price", value),
		}
	}

	if !amount.IsPositive() {
		return decimal.Zero, &types.ValidationError{
			Field:   "price",
			Value:   value,
			Rule:    "positive",
			Message: "price must be greater than zero",
		}
	}

	return amount, nil
}
