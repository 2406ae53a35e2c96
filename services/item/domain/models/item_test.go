package models

import (
	"strings"
	"testing"
)

func TestNewItem(t *testing.T) {
	t.Run("trims fields", func(t *testing.T) {
		item, err := NewItem(3, " bikes ", "  Red Bike", "  barely used  ", " 120 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Category != "bikes" || item.Title != "Red Bike" || item.Description != "barely used" || item.Price != "120" {
			t.Fatalf("fields not trimmed: %+v", item)
		}
		if item.OwnerID != 3 {
			t.Fatalf("expected OwnerID 3, got %d", item.OwnerID)
		}
		if item.ID != 0 || !item.CreatedAt.IsZero() {
			t.Fatal("store-assigned fields must be zero before save")
		}
	})

	t.Run("description optional", func(t *testing.T) {
		item, err := NewItem(1, "books", "Go in Action", "", "15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Description != "" {
			t.Fatalf("expected empty description, got %q", item.Description)
		}
	})

	errCases := []struct {
		name                                string
		owner                               int64
		category, title, description, price string
	}{
		{"missing category", 1, "", "Red Bike", "", "120"},
		{"blank title", 1, "bikes", "   ", "", "120"},
		{"missing price", 1, "bikes", "Red Bike", "", ""},
		{"title too long", 1, "bikes", strings.Repeat("x", 201), "", "120"},
		{"description too long", 1, "bikes", "Red Bike", strings.Repeat("x", 2001), "120"},
		{"no owner", 0, "bikes", "Red Bike", "", "120"},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewItem(tt.owner, tt.category, tt.title, tt.description, tt.price); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
