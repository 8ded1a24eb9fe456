package page

import (
	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

// WritePageGuard is a RAII-style token granting exclusive, mutable
// access to a page's data. At most one WritePageGuard may
// exist for a page at a time, and never alongside any ReadPageGuard for
// that page.
type WritePageGuard struct {
	baseGuard
}

// NewWriteGuard is called only by the buffer pool manager, after it has
// already incremented the frame's pin count and marked it non-evictable
// under the pool latch. It acquires the frame's exclusive lock and
// returns a valid guard.
func NewWriteGuard(pageID types.PageID, frame frameHandle, replacer evictableSetter, poolLock *common.Mutex) *WritePageGuard {
	frame.RWLatch().WLock()
	return &WritePageGuard{baseGuard{
		pageID:   pageID,
		frame:    frame,
		replacer: replacer,
		poolLock: poolLock,
		valid:    true,
	}}
}

// GetData returns a read-only view of the page's bytes.
func (g *WritePageGuard) GetData() *[common.PageSize]byte {
	return g.frame.Data()
}

// GetDataMut returns a mutable view of the page's bytes and eagerly sets
// the frame's dirty flag, the simplest correct rule.
func (g *WritePageGuard) GetDataMut() *[common.PageSize]byte {
	g.frame.SetDirty(true)
	return g.frame.Data()
}

// AsWrite reinterprets the page's bytes as a read-only *T, without marking
// the frame dirty.
func AsWrite[T any](g *WritePageGuard) *T {
	return reinterpret[T](g.frame.Data())
}

// AsMut reinterprets the page's bytes as a mutable *T and marks the
// frame dirty.
func AsMut[T any](g *WritePageGuard) *T {
	g.frame.SetDirty(true)
	return reinterpret[T](g.frame.Data())
}

// Drop releases the guard's pin and write lock. Idempotent.
func (g *WritePageGuard) Drop() {
	if !g.valid {
		return
	}
	g.drop(g.frame.RWLatch().WUnlock)
}
