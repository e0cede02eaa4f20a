package postgres

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates outbox event ids. ULIDs sort by creation time,
// which keeps outbox_events primary keys roughly in insert order.
type ULIDGenerator struct {
	now func() time.Time
}

// NewULIDGenerator creates a generator using the wall clock.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{now: time.Now}
}

// Generate returns a new 26-character ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.MustNew(ulid.Timestamp(g.now()), ulid.DefaultEntropy()).String()
}
