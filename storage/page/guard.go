// Package page holds ReadPageGuard and WritePageGuard: scoped access
// tokens enforcing locking and unpinning discipline over a single frame.
package page

import (
	"unsafe"

	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

// frameHandle is the slice of FrameHeader that guards need; defined here
// (rather than importing storage/buffer) to avoid a storage/buffer <->
// storage/page import cycle, since storage/buffer constructs guards.
type frameHandle interface {
	FrameID() types.FrameID
	Data() *[common.PageSize]byte
	IsDirty() bool
	SetDirty(bool)
	DecPinCount() int64
	RWLatch() common.ReaderWriterLatch
}

// evictableSetter is the one replacer operation a guard's Drop needs: if
// the pin count reaches zero, set_evictable(frame_id, true).
type evictableSetter interface {
	SetEvictable(types.FrameID, bool)
}

// baseGuard holds the fields ReadPageGuard and WritePageGuard share:
// page id, a reference to the frame header, references to the replacer
// and pool latch, and a valid flag.
type baseGuard struct {
	pageID   types.PageID
	frame    frameHandle
	replacer evictableSetter
	poolLock *common.Mutex
	valid    bool
}

// drop is the shared release logic, idempotent; under the pool latch, it
// decrements the pin count and marks the frame evictable if it reaches
// zero, and only then releases the frame lock, so a reader observing
// evictable=true can never find the frame still held by a departing
// guard (DESIGN.md decision 2).
func (g *baseGuard) drop(unlock func()) {
	if !g.valid {
		return
	}

	g.poolLock.Lock()
	remaining := g.frame.DecPinCount()
	if remaining == 0 {
		g.replacer.SetEvictable(g.frame.FrameID(), true)
	}
	g.poolLock.Unlock()

	unlock()

	g.valid = false
	g.frame = nil
	g.replacer = nil
	g.poolLock = nil
}

// PageID returns the id of the page this guard covers.
func (g *baseGuard) PageID() types.PageID { return g.pageID }

// IsValid reports whether the guard still owns its lock/pin.
func (g *baseGuard) IsValid() bool { return g.valid }

// IsDirty returns the frame's current dirty flag.
func (g *baseGuard) IsDirty() bool { return g.frame.IsDirty() }

// reinterpret casts data's first len(T) bytes as *T, zero-copy. T must
// not contain Go pointers, since the buffer's lifetime is the frame's,
// not T's.
func reinterpret[T any](data *[common.PageSize]byte) *T {
	return (*T)(unsafe.Pointer(data))
}
