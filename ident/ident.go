// Package ident generates the externally visible identifiers used for
// orders, payments and reviews: a short prefix, the tail of the
// current millisecond timestamp, and a random base36 suffix. Collision
// is not actively detected; uniqueness is overwhelming in practice.
package ident

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	base36       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLength = 6
)

// New returns prefix + last 6 digits of the ms timestamp + 6 random
// base36 characters, e.g. "ORD845123X7K2QD".
func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

// NewAt is New with an explicit clock, for tests.
func NewAt(prefix string, now time.Time) string {
	ts := fmt.Sprintf("%d", now.UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return prefix + ts + randomSuffix(suffixLength)
}

// NewTransactionID returns an opaque gateway-style transaction id.
func NewTransactionID() string {
	return "TXN" + uuid.NewString()
}

func randomSuffix(n int) string {
	max := big.NewInt(int64(len(base36)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		b[i] = base36[idx.Int64()]
	}
	return string(b)
}
