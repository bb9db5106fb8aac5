package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. Every entity id in the system (users,
// workouts, meals, verification codes) comes from here; ULIDs sort by
// creation time, which keeps DynamoDB range scans in insertion order.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
