// Package collision finds strips with identical raw content.
package collision

import (
	"bytes"

	"github.com/arloliu/faxstrip/internal/hash"
)

// Tracker indexes strips by digest as they are added in order. A digest
// only selects candidates; content equality is confirmed bytewise, and a
// digest shared by different content is recorded as a collision.
type Tracker struct {
	seen         map[uint64][]int // digest → indexes of distinct strips
	strips       [][]byte         // raw strips by index
	distinct     int
	hasCollision bool
}

// NewTracker creates a tracker sized for n strips.
func NewTracker(n int) *Tracker {
	return &Tracker{
		seen:   make(map[uint64][]int, n),
		strips: make([][]byte, 0, n),
	}
}

// Track adds the next strip. It returns the strip's digest and the index of
// the first earlier strip with the same content, or the strip's own index
// when its content is new.
//
// raw is retained for the lifetime of the tracker.
func (t *Tracker) Track(raw []byte) (digest uint64, source int) {
	index := len(t.strips)
	t.strips = append(t.strips, raw)
	digest = hash.Sum(raw)

	candidates := t.seen[digest]
	for _, j := range candidates {
		if bytes.Equal(t.strips[j], raw) {
			return digest, j
		}
	}
	if len(candidates) > 0 {
		t.hasCollision = true
	}

	t.seen[digest] = append(candidates, index)
	t.distinct++

	return digest, index
}

// HasCollision reports whether two different strips shared a digest.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Distinct returns the number of strips with unique content.
func (t *Tracker) Distinct() int {
	return t.distinct
}
