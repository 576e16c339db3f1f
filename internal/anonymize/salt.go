// Package anonymize implements the one-way transforms that strip
// identifying data from diagnostic events before export: keyed path
// hashing, an ordered battery of identity matchers for free text,
// and secret redaction for captured warning/error messages.
//
// Every transform is keyed by a session Salt owned by the instance
// that uses it. There is no package-level salt and no reverse
// mapping anywhere: within one session the same input always maps
// to the same output, and two sessions disagree on essentially
// every input.
package anonymize

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// SaltSize is the keyed-hash key size required by BLAKE3.
const SaltSize = 32

// Salt is a session-scoped random key for the anonymizing hashes.
// It is an explicit value passed to each anonymizer constructor,
// never process-global state.
type Salt [SaltSize]byte

// NewSalt returns a fresh random salt.
func NewSalt() (Salt, error) {
	var s Salt
	if _, err := rand.Read(s[:]); err != nil {
		return Salt{}, err
	}
	return s, nil
}

// hashLen is the hex width of truncated component hashes. 8 hex
// chars (32 bits) is plenty for referential consistency within one
// report while keeping paths readable.
const hashLen = 8

// shortHash returns the truncated hex of the salted BLAKE3 hash of s.
func (k Salt) shortHash(s string) string {
	h, err := blake3.NewKeyed(k[:])
	if err != nil {
		// NewKeyed only fails on a wrong key size, which the Salt
		// type rules out.
		panic(err)
	}
	_, _ = h.Write([]byte(s))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:hashLen/2])
}
