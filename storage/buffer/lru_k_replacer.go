// Package buffer holds the LRU-K replacer, the per-frame header, and the
// buffer pool manager: the core resource arbiter described in spec.md §4.
package buffer

import (
	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/errors"
	"github.com/1554823142/databaseCMU/types"
)

// lruKNode tracks one frame's access history plus its evictable flag.
// The natural map[frame_id]->(history, evictable) representation named
// in spec.md §9 design notes.
type lruKNode struct {
	history   []uint64 // oldest first, length <= k
	evictable bool
}

// LRUKReplacer selects victim frames using backward K-distance.
// All operations execute under a single internal mutex; O(N) per call is
// acceptable because N (the pool size) is small and bounded.
type LRUKReplacer struct {
	mu        common.Mutex
	nodes     map[types.FrameID]*lruKNode
	k         uint64
	curTS     uint64
	curSize   int
	poolLimit uint64
}

// NewLRUKReplacer creates a replacer for a pool of numFrames frames with
// backward-distance parameter k.
func NewLRUKReplacer(numFrames uint64, k uint64) *LRUKReplacer {
	return &LRUKReplacer{
		nodes:     make(map[types.FrameID]*lruKNode),
		k:         k,
		poolLimit: numFrames,
	}
}

// RecordAccess appends the current logical timestamp to frameID's
// history, unless accessType is AccessScan (spec §4.1: scans must not
// pollute hot-page bookkeeping). Creates tracking state for frameID if
// this is its first access of any kind, mirroring the original C++
// RecordAccess, which inserts an empty node before checking the access
// type.
func (r *LRUKReplacer) RecordAccess(frameID types.FrameID, accessType types.AccessType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	common.SH_Assert(uint64(frameID) < r.poolLimit, "LRUKReplacer.RecordAccess: invalid frame id")

	node, ok := r.nodes[frameID]
	if !ok {
		node = &lruKNode{}
		r.nodes[frameID] = node
	}
	if accessType == types.AccessScan {
		return
	}
	if uint64(len(node.history)) == r.k {
		node.history = node.history[1:]
	}
	node.history = append(node.history, r.curTS)
	r.curTS++
}

// SetEvictable flips frameID's evictable flag, maintaining the size
// counter. A no-op if the flag is already set to value.
// Creates tracking state for frameID if it has never been seen, just
// like RecordAccess.
func (r *LRUKReplacer) SetEvictable(frameID types.FrameID, evictable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	common.SH_Assert(uint64(frameID) < r.poolLimit, "LRUKReplacer.SetEvictable: invalid frame id")

	node, ok := r.nodes[frameID]
	if !ok {
		node = &lruKNode{}
		r.nodes[frameID] = node
	}
	if evictable && !node.evictable {
		node.evictable = true
		r.curSize++
	} else if !evictable && node.evictable {
		node.evictable = false
		r.curSize--
	}
}

// Remove drops all replacer state for frameID. It is a no-op if frameID
// was never tracked; it panics with errors.ErrInvariantViolation if the
// frame is tracked and still not evictable.
func (r *LRUKReplacer) Remove(frameID types.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[frameID]
	if !ok {
		return
	}
	if !node.evictable {
		panic(errors.ErrInvariantViolation)
	}
	delete(r.nodes, frameID)
	r.curSize--
}

// Evict returns the victim frame id and true, or false if no evictable
// frame exists. Victim selection rule:
//  1. frames with fewer than k recorded accesses ("cold") outrank any
//     frame with k accesses.
//  2. within a tier, the victim is whichever frame's oldest recorded
//     timestamp is smallest.
//  3. ties broken by smallest frame id (documented, per spec §4.1.3).
//
// A frame with an empty history is treated as maximally cold
// and wins immediately against any frame that has recorded an access.
func (r *LRUKReplacer) Evict() (types.FrameID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Tier 0: empty history (maximally cold). Tier 1: cold, <k accesses.
	// Tier 2: warm, k accesses. Lower tier always wins; within a tier the
	// smallest oldest-timestamp wins, ties broken by smallest frame id.
	const (
		tierEmpty = 0
		tierCold  = 1
		tierWarm  = 2
	)

	var (
		victim     types.FrameID
		found      bool
		bestTier   int
		bestOldest uint64
	)

	for frameID, node := range r.nodes {
		if !node.evictable {
			continue
		}

		tier := tierWarm
		var oldest uint64
		switch {
		case len(node.history) == 0:
			tier = tierEmpty
		case uint64(len(node.history)) < r.k:
			tier = tierCold
			oldest = node.history[0]
		default:
			tier = tierWarm
			oldest = node.history[0]
		}

		better := !found ||
			tier < bestTier ||
			(tier == bestTier && (oldest < bestOldest || (oldest == bestOldest && frameID < victim)))
		if better {
			victim, found, bestTier, bestOldest = frameID, true, tier, oldest
		}
	}

	if !found {
		return 0, false
	}

	node := r.nodes[victim]
	node.history = nil
	delete(r.nodes, victim)
	r.curSize--
	return victim, true
}

// Size returns the number of currently evictable frames.
func (r *LRUKReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.curSize
}
