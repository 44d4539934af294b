// Package checksum fingerprints an agency's mutable fields so upstream
// edits can be detected after ingestion.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Compute returns the SHA-256 hex digest over the agency's mutable fields.
// Field order is fixed: short name, name, slug, the legacy children field,
// the serialized CFR reference list, and the parent short name, joined with
// "|". Identical field values always produce the same digest, across runs.
func Compute(shortName, name, slug, children, cfrReference, parentShortName string) string {
	data := strings.Join([]string{
		shortName,
		name,
		slug,
		children,
		cfrReference,
		parentShortName,
	}, "|")

	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// HasChanged reports whether a stored digest no longer matches a
// recomputation over the given field values. Pure comparison, no side
// effects.
func HasChanged(stored, shortName, name, slug, children, cfrReference, parentShortName string) bool {
	return stored != Compute(shortName, name, slug, children, cfrReference, parentShortName)
}
