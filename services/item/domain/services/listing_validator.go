// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"unicode"

	"github.com/ghuser/usedmarket/services/item/domain/models"
)

// ValidateSingleLine rejects control characters (Unicode category Cc),
// including newlines and tabs, in category, title and price. Length and
// presence are checked by models.NewItem.
func ValidateSingleLine(field, s string) error {
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("%s must not contain control characters", field)
		}
	}
	return nil
}

// ValidateDescription allows line breaks and tabs but no other control characters.
func ValidateDescription(s string) error {
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("description must not contain control characters")
		}
	}
	return nil
}

// ValidateItemForCreation performs field-content validation on a listing
// built via models.NewItem before it is persisted.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	for _, f := range []struct{ name, value string }{
		{"category", item.Category},
		{"title", item.Title},
		{"price", item.Price},
	} {
		if err := ValidateSingleLine(f.name, f.value); err != nil {
			return err
		}
	}

	if err := ValidateDescription(item.Description); err != nil {
		return err
	}

	if item.OwnerID <= 0 {
		return fmt.Errorf("owner_id must be set")
	}

	return nil
}
