package errors

import (
	"testing"
)

func TestValidateArticleID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "singleton", false},
		{"valid nested", "behavioral/observer", false},
		{"valid with dash", "structural/abstract-factory", false},
		{"valid with underscore", "structural/abstract_factory", false},
		{"valid with dots", "patterns/v1.2/observer", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticleID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArticleID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidID) {
				t.Errorf("ValidateArticleID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateCitationURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/path", false},
		{"http", "http://example.com/path", false},
		{"with query", "https://example.com/a?b=c", false},
		{"with fragment", "https://example.com/a#structure", false},

		{"empty", "", true},
		{"no scheme", "example.com", true},
		{"no host", "https:///path", true},
		{"relative path", "../other.md", true},
		{"anchor only", "#section", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCitationURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCitationURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidRoot,
		ErrCodeInvalidConfig,
		ErrCodeInvalidGlob,
		ErrCodeInvalidID,
		ErrCodeOutputCreate,
		ErrCodeOutputWrite,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
