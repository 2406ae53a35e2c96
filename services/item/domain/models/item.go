package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxCategoryLength    = 64
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	maxPriceLength       = 32
)

// Item is a listing. It is read-only once stored; ID and CreatedAt are
// assigned by the store.
type Item struct {
	ID          int64
	Category    string
	Title       string
	Description string // optional; empty when the seller gave none
	Price       string // free text as entered, e.g. "120" or "negotiable"
	OwnerID     int64
	CreatedAt   time.Time
}

// NewItem builds an unsaved listing from raw form input. Category, title and
// price are trimmed and must be non-empty.
func NewItem(ownerID int64, category, title, description, price string) (*Item, error) {
	item := &Item{
		Category:    strings.TrimSpace(category),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Price:       strings.TrimSpace(price),
		OwnerID:     ownerID,
	}

	fields := []struct {
		name     string
		value    string
		required bool
		max      int
	}{
		{"category", item.Category, true, maxCategoryLength},
		{"title", item.Title, true, maxTitleLength},
		{"description", item.Description, false, maxDescriptionLength},
		{"price", item.Price, true, maxPriceLength},
	}
	for _, f := range fields {
		if f.required && f.value == "" {
			return nil, fmt.Errorf("%s is required", f.name)
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return nil, fmt.Errorf("%s must not exceed %d characters", f.name, f.max)
		}
	}
	if ownerID <= 0 {
		return nil, fmt.Errorf("owner_id must be set")
	}
	return item, nil
}
