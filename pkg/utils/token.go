package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// ShareSlugBytes is the entropy of a public share slug. 16 bytes (128 bits)
// makes the hex token non-enumerable in practice.
const ShareSlugBytes = 16

// GenerateShareSlug returns a cryptographically random hex token used as a
// public, unguessable lookup key. It carries no information about the
// record it points to.
func GenerateShareSlug() (string, error) {
	buf := make([]byte, ShareSlugBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
