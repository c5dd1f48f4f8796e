package idgen

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs. IDs made in the same process sort
// by creation time, including within one millisecond.
type ULIDGenerator struct {
	now func() time.Time
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{now: time.Now}
}

// WithClock overrides the timestamp source.
func (g *ULIDGenerator) WithClock(now func() time.Time) *ULIDGenerator {
	g.now = now
	return g
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.MustNew(ulid.Timestamp(g.now()), ulid.DefaultEntropy()).String()
}
