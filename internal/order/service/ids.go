package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const idSuffixLen = 9

// newOrderID generates a human-readable order token, e.g.
// ORD-1735689600000-K3F9Q2X7M. Uniqueness is ultimately guaranteed by the
// store's unique constraint; callers retry on collision.
func newOrderID() (string, error) {
	suffix, err := randToken(idSuffixLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate order id: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix), nil
}

// newTrackingNumber generates a tracking token in the same shape with a TRK
// prefix.
func newTrackingNumber() (string, error) {
	suffix, err := randToken(idSuffixLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate tracking number: %w", err)
	}
	return fmt.Sprintf("TRK-%d-%s", time.Now().UnixMilli(), suffix), nil
}

func randToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b), nil
}
