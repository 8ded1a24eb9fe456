package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

// fakeFrame and fakeReplacer stand in for buffer.FrameHeader/LRUKReplacer
// so this package's tests don't need to import storage/buffer (which
// would create an import cycle, since storage/buffer constructs guards
// from this package).
type fakeFrame struct {
	id       types.FrameID
	data     [common.PageSize]byte
	dirty    bool
	pinCount int64
	latch    common.ReaderWriterLatch
}

func newFakeFrame(id types.FrameID) *fakeFrame {
	return &fakeFrame{id: id, pinCount: 1, latch: common.NewRWLatch()}
}

func (f *fakeFrame) FrameID() types.FrameID            { return f.id }
func (f *fakeFrame) Data() *[common.PageSize]byte      { return &f.data }
func (f *fakeFrame) IsDirty() bool                     { return f.dirty }
func (f *fakeFrame) SetDirty(dirty bool)               { f.dirty = dirty }
func (f *fakeFrame) DecPinCount() int64                { f.pinCount--; return f.pinCount }
func (f *fakeFrame) RWLatch() common.ReaderWriterLatch { return f.latch }

type fakeReplacer struct {
	evictable map[types.FrameID]bool
}

func newFakeReplacer() *fakeReplacer {
	return &fakeReplacer{evictable: make(map[types.FrameID]bool)}
}

func (r *fakeReplacer) SetEvictable(id types.FrameID, evictable bool) {
	r.evictable[id] = evictable
}

type fixedValue struct {
	A int64
	B int64
}

func TestReadGuardDropIsIdempotent(t *testing.T) {
	frame := newFakeFrame(0)
	replacer := newFakeReplacer()
	var latch common.Mutex

	g := NewReadGuard(types.PageID(1), frame, replacer, &latch)
	assert.True(t, g.IsValid())
	assert.Equal(t, types.PageID(1), g.PageID())

	g.Drop()
	assert.False(t, g.IsValid())
	assert.Equal(t, int64(0), frame.pinCount)
	assert.True(t, replacer.evictable[0])

	// Second drop is a no-op: must not double-decrement or re-unlock.
	g.Drop()
	assert.Equal(t, int64(0), frame.pinCount)
}

func TestWriteGuardDataMutSetsDirty(t *testing.T) {
	frame := newFakeFrame(0)
	replacer := newFakeReplacer()
	var latch common.Mutex

	g := NewWriteGuard(types.PageID(2), frame, replacer, &latch)
	assert.False(t, g.IsDirty())

	data := g.GetDataMut()
	data[0] = 0x42
	assert.True(t, g.IsDirty())
	assert.Equal(t, byte(0x42), g.GetData()[0])

	g.Drop()
	assert.True(t, replacer.evictable[0])
}

func TestWriteGuardAsMutReinterpretsBytes(t *testing.T) {
	frame := newFakeFrame(0)
	replacer := newFakeReplacer()
	var latch common.Mutex

	g := NewWriteGuard(types.PageID(3), frame, replacer, &latch)
	v := AsMut[fixedValue](g)
	v.A = 7
	v.B = 9
	assert.True(t, g.IsDirty())

	readBack := AsWrite[fixedValue](g)
	assert.Equal(t, int64(7), readBack.A)
	assert.Equal(t, int64(9), readBack.B)

	g.Drop()
}

func TestReadGuardAsReinterpretsBytes(t *testing.T) {
	frame := newFakeFrame(0)
	replacer := newFakeReplacer()
	var latch common.Mutex

	wg := NewWriteGuard(types.PageID(4), frame, replacer, &latch)
	v := AsMut[fixedValue](wg)
	v.A, v.B = 1, 2
	wg.Drop()

	frame.pinCount = 1 // simulate the manager re-pinning for the read guard
	rg := NewReadGuard(types.PageID(4), frame, replacer, &latch)
	readBack := As[fixedValue](rg)
	assert.Equal(t, int64(1), readBack.A)
	assert.Equal(t, int64(2), readBack.B)
	rg.Drop()
}

func TestGuardDropOnlyMarksEvictableWhenPinReachesZero(t *testing.T) {
	frame := newFakeFrame(0)
	frame.pinCount = 2 // simulate a second outstanding guard on the same frame
	replacer := newFakeReplacer()
	var latch common.Mutex

	g := NewReadGuard(types.PageID(5), frame, replacer, &latch)
	g.Drop()

	assert.Equal(t, int64(1), frame.pinCount)
	_, touched := replacer.evictable[0]
	assert.False(t, touched, "SetEvictable must not be called while the pin count is still > 0")
}

func TestMultipleReadGuardsCanCoexist(t *testing.T) {
	frame := newFakeFrame(0)
	replacer := newFakeReplacer()
	var latch common.Mutex

	g1 := NewReadGuard(types.PageID(6), frame, replacer, &latch)
	frame.pinCount++ // manager would have incremented before constructing g2
	g2 := NewReadGuard(types.PageID(6), frame, replacer, &latch)

	require.True(t, g1.IsValid())
	require.True(t, g2.IsValid())

	g1.Drop()
	g2.Drop()
}
