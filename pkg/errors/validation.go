package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateArticleID validates an article ID before it is used to form an
// output path. IDs are derived from source paths, so a well-formed corpus
// never trips these checks; they guard against hostile or corrupted input.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No absolute paths
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//   - Maximum length of 500 characters
func ValidateArticleID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "article ID cannot be empty")
	}

	const maxIDLength = 500
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "article ID too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "article ID contains invalid characters")
		}
	}

	if strings.HasPrefix(id, "/") {
		return New(ErrCodeInvalidID, "article ID must be relative (cannot start with /)")
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidID, "article ID cannot contain path traversal sequences (..)")
	}

	if strings.Contains(id, "\\") {
		return New(ErrCodeInvalidID, "article ID cannot contain backslashes")
	}

	return nil
}

// citationURLRegex matches the scheme://host shape required of citations.
// Path, query and fragment are unconstrained; the Validator only checks
// that a scheme and a non-empty host are present.
var citationURLRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://[^\s/]+`)

// ValidateCitationURL validates a citation URL for basic well-formedness.
// It does not resolve the host or restrict the scheme beyond syntax.
func ValidateCitationURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !citationURLRegex.MatchString(rawURL) {
		return New(ErrCodeInvalidInput, "URL must have the form scheme://host: %q", rawURL)
	}

	return nil
}
