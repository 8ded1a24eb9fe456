package page

import (
	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

// ReadPageGuard is a RAII-style token granting shared, read-only access
// to a page's data. Any number of ReadPageGuards may coexist
// for the same page across goroutines; none may coexist with a
// WritePageGuard for that page.
type ReadPageGuard struct {
	baseGuard
}

// NewReadGuard is called only by the buffer pool manager, after it has
// already incremented the frame's pin count and marked it non-evictable
// under the pool latch. It acquires the
// frame's shared lock and returns a valid guard.
func NewReadGuard(pageID types.PageID, frame frameHandle, replacer evictableSetter, poolLock *common.Mutex) *ReadPageGuard {
	frame.RWLatch().RLock()
	return &ReadPageGuard{baseGuard{
		pageID:   pageID,
		frame:    frame,
		replacer: replacer,
		poolLock: poolLock,
		valid:    true,
	}}
}

// GetData returns a read-only view of the page's bytes.
func (g *ReadPageGuard) GetData() *[common.PageSize]byte {
	return g.frame.Data()
}

// As reinterprets the page's bytes as *T without copying.
func As[T any](g *ReadPageGuard) *T {
	return reinterpret[T](g.frame.Data())
}

// Drop releases the guard's pin and read lock. Idempotent.
func (g *ReadPageGuard) Drop() {
	if !g.valid {
		return
	}
	g.drop(g.frame.RWLatch().RUnlock)
}
