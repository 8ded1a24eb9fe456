package buffer

import (
	"sync/atomic"

	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

// FrameHeader is the per-frame state named in spec §3: an immutable
// frame id, a fixed-size data buffer, an atomic pin count, a dirty flag,
// and the reader/writer latch guarding the buffer. Constructed once at
// pool creation and reused indefinitely; Reset clears it for reuse by a
// different page.
type FrameHeader struct {
	frameID  types.FrameID
	pageID   types.PageID // page currently resident in this frame, or InvalidPageID
	data     [common.PageSize]byte
	pinCount atomic.Int64
	dirty    bool
	rwlatch  common.ReaderWriterLatch
}

// NewFrameHeader constructs a zeroed, empty frame header for the given
// frame id.
func NewFrameHeader(frameID types.FrameID) *FrameHeader {
	return &FrameHeader{
		frameID: frameID,
		pageID:  types.InvalidPageID,
		rwlatch: common.NewRWLatch(),
	}
}

// FrameID returns the frame's immutable index.
func (f *FrameHeader) FrameID() types.FrameID { return f.frameID }

// PageID returns the id of the page currently resident in this frame, or
// types.InvalidPageID if the frame holds no page. Must be read under
// pool_latch.
func (f *FrameHeader) PageID() types.PageID { return f.pageID }

// SetPageID records which page this frame now holds. Must be called
// under pool_latch.
func (f *FrameHeader) SetPageID(pageID types.PageID) { f.pageID = pageID }

// Data returns a pointer to the frame's data buffer.
func (f *FrameHeader) Data() *[common.PageSize]byte { return &f.data }

// PinCount performs a lock-free atomic read of the pin count (spec §5:
// "pin_count is an atomic integer so get_pin_count is a lock-free read").
func (f *FrameHeader) PinCount() int64 { return f.pinCount.Load() }

// IncPinCount atomically increments the pin count and returns the new value.
func (f *FrameHeader) IncPinCount() int64 { return f.pinCount.Add(1) }

// DecPinCount atomically decrements the pin count and returns the new value.
func (f *FrameHeader) DecPinCount() int64 { return f.pinCount.Add(-1) }

// SetPinCount atomically sets the pin count to n, used when a frame is
// freshly loaded and pinned exactly once.
func (f *FrameHeader) SetPinCount(n int64) { f.pinCount.Store(n) }

// IsDirty reports the frame's current dirty flag. Callers must hold
// pool_latch or the frame's own rwlatch to observe a consistent value,
// matching every other mutation of this field.
func (f *FrameHeader) IsDirty() bool { return f.dirty }

// SetDirty sets the dirty flag. Must be called under pool_latch or
// while holding the frame's write latch.
func (f *FrameHeader) SetDirty(dirty bool) { f.dirty = dirty }

// Reset zeroes the data buffer, clears the dirty flag, and resets the
// pin count to zero, matching FrameHeader::Reset in the original source.
// Must be called under pool_latch.
func (f *FrameHeader) Reset() {
	for i := range f.data {
		f.data[i] = 0
	}
	f.pinCount.Store(0)
	f.dirty = false
	f.pageID = types.InvalidPageID
}

// RWLatch exposes the frame's reader/writer latch to the page guards,
// which are the only callers permitted to lock it.
func (f *FrameHeader) RWLatch() common.ReaderWriterLatch { return f.rwlatch }
