// Package idgen produces the human-readable business identifiers assigned to
// applications and contact messages at creation time.
//
// An identifier is a prefix, the trailing digits of a millisecond timestamp,
// and a run of uppercase base-36 characters drawn from a randomly-seeded
// per-process sequence. The sequence guarantees no collisions within a
// process; across processes uniqueness is probabilistic and is backstopped by
// the store's unique index, which callers must surface as a conflict rather
// than assume impossible.
package idgen

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// appSeq and msgSeq start at a crypto-random offset and advance by a large
// odd stride per call, so consecutive identifiers share no visible pattern
// while still enumerating the full suffix space before repeating.
var (
	appSeq = newSeq()
	msgSeq = newSeq()
)

func newSeq() *uint64 {
	var buf [8]byte
	seed := uint64(time.Now().UnixNano())
	if _, err := rand.Read(buf[:]); err == nil {
		seed = binary.BigEndian.Uint64(buf[:])
	}
	return &seed
}

// NewApplicationID returns APP + last 8 digits of the millisecond timestamp
// + 6 uppercase base-36 characters.
func NewApplicationID() string {
	return "APP" + timestampSuffix(8) + suffix(appSeq, 6)
}

// NewMessageID returns MSG + last 10 digits of the millisecond timestamp
// + 4 uppercase base-36 characters.
func NewMessageID() string {
	return "MSG" + timestampSuffix(10) + suffix(msgSeq, 4)
}

func timestampSuffix(n int) string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > n {
		ts = ts[len(ts)-n:]
	}
	return ts
}

// suffix encodes the next sequence value as n base-36 characters. The stride
// is divisible by neither 2 nor 3, hence coprime with 36^n, so the suffix
// only repeats after the full space (36^4 ≈ 1.7M, 36^6 ≈ 2.2B values) is
// exhausted.
func suffix(seq *uint64, n int) string {
	const stride = 0x9E3779B97F4A7C15
	v := atomic.AddUint64(seq, stride)
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = base36[v%36]
		v /= 36
	}
	return string(out)
}
