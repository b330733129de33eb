package codes

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// codeAlphabet is the 32-symbol set used for code suffixes. Visually
// ambiguous characters (0/O, 1/I) are excluded.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	suffixLength = 6
	maxAttempts  = 10
	prefixLength = 4
)

// ErrGenerationExhausted is returned when 10 consecutive candidates collide
// with existing codes. Retryable: the caller may simply resubmit.
var ErrGenerationExhausted = errors.New("code generation exhausted after collisions")

// DefaultPrefix derives the code prefix from an organization slug: the
// first 4 characters, uppercased.
func DefaultPrefix(slug string) string {
	prefix := slug
	if len(prefix) > prefixLength {
		prefix = prefix[:prefixLength]
	}
	return strings.ToUpper(prefix)
}

// NewCandidate builds one candidate code: PREFIX + 6 random characters from
// the restricted alphabet.
func NewCandidate(prefix string) (string, error) {
	var b strings.Builder
	b.WriteString(strings.ToUpper(prefix))

	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < suffixLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}

	return b.String(), nil
}

// Generate produces a code that the exists check does not know, retrying up
// to 10 times before giving up with ErrGenerationExhausted. The check-then-
// insert sequence is not atomic; the store's unique index on the code column
// is the final arbiter under concurrent issuance.
func Generate(prefix string, exists func(code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := NewCandidate(prefix)
		if err != nil {
			return "", err
		}

		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrGenerationExhausted
}
