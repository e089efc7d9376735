package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/faxstrip/internal/hash"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(4)

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Distinct())
	require.False(t, tracker.HasCollision())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker(0)

	strips := [][]byte{
		{0x00, 0x00},
		{0xFF, 0x00},
		{0x00, 0x00},
		{0xFF, 0x00},
		{0x01},
		{0x00, 0x00},
	}
	wantSource := []int{0, 1, 0, 1, 4, 0}

	for i, raw := range strips {
		digest, source := tracker.Track(raw)
		require.Equal(t, hash.Sum(raw), digest, "strip %d", i)
		require.Equal(t, wantSource[i], source, "strip %d", i)
	}

	require.Equal(t, 3, tracker.Distinct())
	require.False(t, tracker.HasCollision())
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker(2)

	// Force two different strips under one digest.
	_, source := tracker.Track([]byte{1, 2, 3})
	require.Equal(t, 0, source)
	digest := hash.Sum([]byte{1, 2, 3})
	tracker.strips = append(tracker.strips, []byte{9, 9, 9})
	tracker.seen[digest] = append(tracker.seen[digest], 1)
	tracker.distinct++

	_, source = tracker.Track([]byte{1, 2, 3})
	require.Equal(t, 0, source)
	require.False(t, tracker.HasCollision())

	tracker.seen[hash.Sum([]byte{4})] = []int{1}
	_, source = tracker.Track([]byte{4})
	require.Equal(t, 3, source)
	require.True(t, tracker.HasCollision())
	require.Equal(t, 3, tracker.Distinct())
}
