package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached value with its provenance and expiry.
type Entry struct {
	Key string `json:"key"`

	// Source identifies where the value came from, e.g. an API base URL.
	Source string `json:"source,omitempty"`

	Value json.RawMessage `json:"value"`

	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the entry is stale at now.
func (e Entry) ExpiredAt(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Remaining is the time left before expiry at now, never negative.
func (e Entry) Remaining(now time.Time) time.Duration {
	return max(0, e.ExpiresAt.Sub(now))
}

// Decode unmarshals the cached value into v.
func (e Entry) Decode(v any) error {
	return json.Unmarshal(e.Value, v)
}
