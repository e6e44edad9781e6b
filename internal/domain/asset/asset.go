// Package asset holds the identifier for registry-managed names. The
// marketplace never owns name records; it looks them up on demand through the
// registry collaborator, so the identifier is all that lives here.
package asset

import (
	"errors"
	"strings"
)

var ErrEmptyID = errors.New("asset id must not be empty")

// ID is the opaque handle of a registry-managed name, e.g. "vault.eth".
type ID string

func ParseID(s string) (ID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmptyID
	}
	return ID(strings.ToLower(trimmed)), nil
}

func (id ID) String() string {
	return string(id)
}
