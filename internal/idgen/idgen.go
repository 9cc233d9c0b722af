// Package idgen generates short, unguessable public snippet identifiers.
package idgen

import (
	"crypto/rand"
	"fmt"
)

// alphabet has 64 URL-safe characters, so every random byte maps onto it
// without modulo bias.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"

// Length is the number of characters in a generated identifier,
// giving 64^10 possible values.
const Length = 10

// New returns a fresh random identifier of Length characters drawn from
// a cryptographically secure source.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
