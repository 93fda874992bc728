package services

import (
	"strconv"
	"strings"
)

// IsOwner compares a resource's recorded owner key against the acting key as
// it arrived on the wire. Both sides are normalized to canonical strings so a
// numeric/string mismatch across the transport boundary can never produce a
// false negative. A non-numeric acting key simply never matches.
func IsOwner(ownerID uint, actingKey string) bool {
	return strconv.FormatUint(uint64(ownerID), 10) == strings.TrimSpace(actingKey)
}

// AssertOwner is IsOwner as a gate: ErrForbidden on mismatch, which handlers
// surface as 403, distinct from ErrNotFound.
func AssertOwner(ownerID uint, actingKey string) error {
	if !IsOwner(ownerID, actingKey) {
		return ErrForbidden
	}
	return nil
}
