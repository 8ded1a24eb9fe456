package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1554823142/databaseCMU/types"
)

func TestLRUKReplacerEmptyHistoryWinsFirst(t *testing.T) {
	r := NewLRUKReplacer(4, 2)

	// Frame 0 is tracked (evictable) but never accessed: maximally cold.
	r.SetEvictable(0, true)
	r.RecordAccess(1, types.AccessLookup)
	r.SetEvictable(1, true)

	victim, ok := r.Evict()
	require.True(t, ok)
	assert.Equal(t, types.FrameID(0), victim)
}

func TestLRUKReplacerColdBeatsWarm(t *testing.T) {
	// Scenario S6: pool size 3, K=3. A and B accessed 5x (warm, k=3
	// history), C accessed 2x (cold, < k accesses). Evict() must return C.
	r := NewLRUKReplacer(3, 3)

	for i := 0; i < 5; i++ {
		r.RecordAccess(0, types.AccessLookup) // A
		r.RecordAccess(1, types.AccessLookup) // B
	}
	for i := 0; i < 2; i++ {
		r.RecordAccess(2, types.AccessLookup) // C
	}
	r.SetEvictable(0, true)
	r.SetEvictable(1, true)
	r.SetEvictable(2, true)

	victim, ok := r.Evict()
	require.True(t, ok)
	assert.Equal(t, types.FrameID(2), victim)
}

func TestLRUKReplacerOldestWarmWins(t *testing.T) {
	r := NewLRUKReplacer(2, 2)

	r.RecordAccess(0, types.AccessLookup)
	r.RecordAccess(0, types.AccessLookup) // frame 0's 2 accesses are older
	r.RecordAccess(1, types.AccessLookup)
	r.RecordAccess(1, types.AccessLookup) // frame 1's 2 accesses are newer
	r.SetEvictable(0, true)
	r.SetEvictable(1, true)

	victim, ok := r.Evict()
	require.True(t, ok)
	assert.Equal(t, types.FrameID(0), victim)
}

func TestLRUKReplacerScanAccessNotRecorded(t *testing.T) {
	r := NewLRUKReplacer(2, 2)

	r.RecordAccess(0, types.AccessScan)
	r.RecordAccess(0, types.AccessScan)
	r.RecordAccess(1, types.AccessLookup)
	r.SetEvictable(0, true)
	r.SetEvictable(1, true)

	// Frame 0 has an empty history (scans never recorded) so it is
	// maximally cold and wins over frame 1, which has one access.
	victim, ok := r.Evict()
	require.True(t, ok)
	assert.Equal(t, types.FrameID(0), victim)
}

func TestLRUKReplacerSetEvictableIsIdempotent(t *testing.T) {
	r := NewLRUKReplacer(2, 2)

	r.SetEvictable(0, true)
	r.SetEvictable(0, true)
	assert.Equal(t, 1, r.Size())

	r.SetEvictable(0, false)
	r.SetEvictable(0, false)
	assert.Equal(t, 0, r.Size())
}

func TestLRUKReplacerRemoveNonEvictablePanics(t *testing.T) {
	r := NewLRUKReplacer(2, 2)
	r.RecordAccess(0, types.AccessLookup)

	assert.Panics(t, func() { r.Remove(0) })
}

func TestLRUKReplacerRemoveUnknownFrameIsNoop(t *testing.T) {
	r := NewLRUKReplacer(2, 2)
	assert.NotPanics(t, func() { r.Remove(5) })
}

func TestLRUKReplacerRemoveEvictable(t *testing.T) {
	r := NewLRUKReplacer(2, 2)
	r.RecordAccess(0, types.AccessLookup)
	r.SetEvictable(0, true)

	r.Remove(0)
	assert.Equal(t, 0, r.Size())

	_, ok := r.Evict()
	assert.False(t, ok)
}

func TestLRUKReplacerNoEvictableFrames(t *testing.T) {
	r := NewLRUKReplacer(2, 2)
	r.RecordAccess(0, types.AccessLookup)

	_, ok := r.Evict()
	assert.False(t, ok)
}

func TestLRUKReplacerHistoryBoundedByK(t *testing.T) {
	r := NewLRUKReplacer(1, 2)

	for i := 0; i < 5; i++ {
		r.RecordAccess(0, types.AccessLookup)
	}
	r.SetEvictable(0, true)

	node := r.nodes[0]
	assert.Len(t, node.history, 2)
}
