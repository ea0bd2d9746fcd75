package id

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time, which makes request tokens cheap to correlate in logs.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// NewUUID generates a random UUIDv4 string for user identifiers.
func NewUUID() string {
	return uuid.NewString()
}
