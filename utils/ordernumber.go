package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber produces a human-readable, effectively unique
// order number of the form ORD-<unix-millis>-<9 random base36 chars>.
// Uniqueness is additionally enforced by the database index.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), randomBase36(9))
}

func randomBase36(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken;
			// fall back to a time-derived index rather than panicking
			out[i] = orderNumberAlphabet[time.Now().UnixNano()%int64(len(orderNumberAlphabet))]
			continue
		}
		out[i] = orderNumberAlphabet[idx.Int64()]
	}
	return string(out)
}
