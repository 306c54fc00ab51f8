package user

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ID is the primary key of a user row. It is generated from a ULID so
// creation order is recoverable from the id, but stored and exposed in
// UUID string form.
type ID string

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// NewID generates a new time-sortable ID.
func NewID() ID {
	entropyLock.Lock()
	defer entropyLock.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return ID(uuid.UUID(id).String())
}

// ParseID validates a UUID-form id string.
func ParseID(s string) (ID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return ID(parsed.String()), nil
}

func (id ID) String() string {
	return string(id)
}
