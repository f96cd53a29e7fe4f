// Package dedupe implements the Redis fast path for duplicate-submission
// windows.
//
// A submission claims a TTL key with SETNX; a second submission inside the
// window finds the key and is rejected without touching the database. The
// store's time-bounded query remains the authoritative check: the claim and
// the subsequent insert are two separate operations, so two near-simultaneous
// submissions racing past both checks is accepted behavior of the windowed
// model, not a bug this package must close.
package dedupe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ApplicationWindow rejects a second application from the same email.
	ApplicationWindow = 24 * time.Hour
	// MessageWindow rejects an identical (email, message) pair.
	MessageWindow = time.Hour
)

// Window tracks recent submissions in Redis.
type Window struct {
	rdb *redis.Client
}

// NewWindow creates a Window on the given client.
func NewWindow(rdb *redis.Client) *Window {
	return &Window{rdb: rdb}
}

// ApplicationKey is the window key for a loan application, keyed on the
// normalized email.
func ApplicationKey(email string) string {
	return "dedupe:app:" + email
}

// MessageKey is the window key for a contact message, keyed on the
// normalized email plus a digest of the message body.
func MessageKey(email, body string) string {
	sum := sha256.Sum256([]byte(body))
	return "dedupe:msg:" + email + ":" + hex.EncodeToString(sum[:8])
}

// Claim marks key as submitted for ttl. It returns true when the key was
// already present, meaning the submission is a duplicate inside the window.
func (w *Window) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	set, err := w.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}

// Release drops a claim, used when the insert that followed it failed so the
// submitter can retry immediately.
func (w *Window) Release(ctx context.Context, key string) error {
	return w.rdb.Del(ctx, key).Err()
}
