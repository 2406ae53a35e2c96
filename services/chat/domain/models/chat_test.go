package models

import (
	"errors"
	"strings"
	"testing"

	chatdomain "github.com/ghuser/usedmarket/services/chat/domain"
)

func TestNormalizeMessageText(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain", "Is it still available?", "Is it still available?", nil},
		{"trimmed", "  hi\n", "hi", nil},
		{"inner newlines kept", "line one\nline two", "line one\nline two", nil},
		{"at limit", strings.Repeat("é", MaxMessageLength), strings.Repeat("é", MaxMessageLength), nil},
		{"empty", "", "", chatdomain.ErrEmptyMessage},
		{"whitespace only", " \t\n ", "", chatdomain.ErrEmptyMessage},
		{"too long", strings.Repeat("é", MaxMessageLength+1), "", chatdomain.ErrMessageTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeMessageText(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("text = %q, want %q", got, tt.want)
			}
		})
	}
}
