package postgres

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGeneratorEmbedsClock(t *testing.T) {
	at := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	g := &ULIDGenerator{now: func() time.Time { return at }}

	id := g.Generate()
	require.Len(t, id, 26, "fits outbox_events.id VARCHAR(26)")

	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.True(t, ulid.Time(parsed.Time()).Equal(at))
}

func TestULIDGeneratorIsUnique(t *testing.T) {
	g := NewULIDGenerator()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
