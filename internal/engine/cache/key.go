package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// KeyParams identifies one lookup.
type KeyParams struct {
	// Source is the data source name, e.g. "boavizta".
	Source string

	// Endpoint is the base URL or table version the value was read from.
	Endpoint string

	// Subject is the looked-up item, e.g. a device category.
	Subject string

	// Extra holds any other parameter that changes the answer.
	Extra map[string]string
}

// GenerateKey returns a stable hex SHA256 key for p. Case and surrounding
// whitespace are ignored and Extra is hashed in key order.
func GenerateKey(p KeyParams) string {
	var b strings.Builder
	for _, part := range []string{p.Source, p.Endpoint, p.Subject} {
		b.WriteString(normalize(part))
		b.WriteByte(0)
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(normalize(k))
		b.WriteByte('=')
		b.WriteString(normalize(p.Extra[k]))
		b.WriteByte(0)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
