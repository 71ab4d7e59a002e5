// Package nullable implements the partial-update contract shared by all
// update endpoints: an omitted field keeps the stored value, an explicit
// empty string nulls a nullable field, and an empty string on a non-nullable
// field is invalid.
package nullable

import "strings"

// Apply resolves a partial-update input against the stored value of a
// nullable text column.
func Apply(current *string, input *string) *string {
	if input == nil {
		return current
	}
	trimmed := strings.TrimSpace(*input)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Required resolves a non-nullable text column. The second return is false
// when the input explicitly clears the value, which callers must reject.
func Required(current string, input *string) (string, bool) {
	if input == nil {
		return current, true
	}
	trimmed := strings.TrimSpace(*input)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
