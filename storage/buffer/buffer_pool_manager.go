package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/storage/disk"
	"github.com/1554823142/databaseCMU/storage/page"
	"github.com/1554823142/databaseCMU/types"
	pair "github.com/notEpsilon/go-pair"
)

// WALNotifier is the log-manager collaborator named in the original
// constructor (log_manager *LogManager). No logging/recovery logic lives
// in this module; a no-op default lets a future WAL
// layer hook in without changing the manager's constructor signature.
type WALNotifier interface {
	NotifyPageWrite(pageID types.PageID)
}

type noopWALNotifier struct{}

func (noopWALNotifier) NotifyPageWrite(types.PageID) {}

// BufferPoolManager is the resource arbiter described in spec §4.3: it
// owns the frame array, page table, free list, replacer, and disk
// scheduler, and hands out scoped read/write access guards.
type BufferPoolManager struct {
	numFrames   int
	nextPageID  atomic.Int64
	latch       common.Mutex
	frames      []*FrameHeader
	pageTable   map[types.PageID]types.FrameID
	freeList    []types.FrameID
	replacer    *LRUKReplacer
	scheduler   *disk.DiskScheduler
	walNotifier WALNotifier
}

// NewBufferPoolManager creates a pool of numFrames frames, backed by
// diskManager, using an LRU-K replacer with backward-distance kDist.
func NewBufferPoolManager(numFrames int, diskManager disk.DiskManager, kDist uint64) *BufferPoolManager {
	bpm := &BufferPoolManager{
		numFrames:   numFrames,
		frames:      make([]*FrameHeader, numFrames),
		pageTable:   make(map[types.PageID]types.FrameID, numFrames),
		freeList:    make([]types.FrameID, numFrames),
		replacer:    NewLRUKReplacer(uint64(numFrames), kDist),
		scheduler:   disk.NewDiskScheduler(diskManager),
		walNotifier: noopWALNotifier{},
	}
	for i := 0; i < numFrames; i++ {
		bpm.frames[i] = NewFrameHeader(types.FrameID(i))
		bpm.freeList[i] = types.FrameID(i)
	}
	return bpm
}

// SetWALNotifier installs a collaborator to be told about page writes.
// Supplemental hook; never called by this module's own
// logic, since logging/recovery is out of scope.
func (b *BufferPoolManager) SetWALNotifier(n WALNotifier) {
	if n == nil {
		n = noopWALNotifier{}
	}
	b.walNotifier = n
}

// Size returns the fixed pool capacity (spec.md's original header also
// names this operation, dropped by the distillation — SPEC_FULL §3.3).
func (b *BufferPoolManager) Size() int { return b.numFrames }

// acquireFrame returns a free or evicted frame id under latch, per
// spec §4.3.2 step 3: prefer the free list, otherwise ask the replacer
// to evict. Returns false if neither yields a frame. Must be called
// with b.latch held.
func (b *BufferPoolManager) acquireFrame() (types.FrameID, bool) {
	if n := len(b.freeList); n > 0 {
		id := b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
		return id, true
	}
	return b.replacer.Evict()
}

// evictAndLoad prepares frame for holding page newPageID, flushing it if
// dirty and then reading newPageID's contents in
// unless skipRead is set (NewPage never reads; it zero-fills). Must be
// called with b.latch held — this implementation performs the I/O while
// still holding pool_latch, the "simplest correct design" spec §4.3.2
// explicitly sanctions (documented in DESIGN.md Open Question 4).
func (b *BufferPoolManager) evictAndLoad(frame *FrameHeader, newPageID types.PageID, skipRead bool) error {
	oldPageID := frame.PageID()
	swap := pair.Pair[types.PageID, types.PageID]{First: oldPageID, Second: newPageID}
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "bpm: evicting page %d to load page %d\n", swap.First, swap.Second)

	if oldPageID.IsValid() {
		if frame.IsDirty() {
			if err := b.scheduler.ScheduleWrite(oldPageID, frame.Data()[:]); err != nil {
				return err
			}
			frame.SetDirty(false)
		}
		delete(b.pageTable, oldPageID)
	}

	frame.Reset()

	if !skipRead {
		if err := b.scheduler.ScheduleRead(newPageID, frame.Data()[:]); err != nil {
			return err
		}
	}

	b.pageTable[newPageID] = frame.FrameID()
	frame.SetPageID(newPageID)
	return nil
}

// pinAndTrack finishes the fetch-or-load algorithm's miss path (spec
// §4.3.2 step 6): resets the pin count to 1, clears dirty, marks the
// frame non-evictable, and records the access. Must be called with
// b.latch held.
func (b *BufferPoolManager) pinAndTrack(frame *FrameHeader, accessType types.AccessType) {
	frame.SetPinCount(1)
	frame.SetDirty(false)
	b.replacer.SetEvictable(frame.FrameID(), false)
	b.replacer.RecordAccess(frame.FrameID(), accessType)
}

// NewPage allocates a fresh page id, obtains a free frame exactly as in
// the miss path (without reading from disk — the page's data is zeros),
// pins it, and returns a WritePageGuard over it — spec §4.3.1's "pinned,
// write-locked via returned guard" variant (DESIGN.md Open Question 1).
// Disk space is assumed elastic; if every frame is pinned, NewPage
// panics via common.SH_Assert.
func (b *BufferPoolManager) NewPage() *page.WritePageGuard {
	b.latch.Lock()

	frameID, ok := b.acquireFrame()
	if !ok {
		// Disk space is elastic but frame space is not: this can only
		// happen if every frame is pinned, which NewPage's caller has
		// no way to avoid by construction (spec §7 tier 2 territory,
		// but the contract promises NewPage never fails, so abort here
		// matches the uncheck-variant-aborts policy used elsewhere).
		common.SH_Assert(false, "BufferPoolManager.NewPage: no free or evictable frame")
	}
	frame := b.frames[frameID]

	pageID := types.PageID(b.nextPageID.Add(1) - 1)
	b.scheduler.IncreaseDiskSpace(pageID)

	if err := b.evictAndLoad(frame, pageID, true); err != nil {
		common.SH_Assert(false, fmt.Sprintf("BufferPoolManager.NewPage: %v", err))
	}
	b.pinAndTrack(frame, types.AccessUnknown)

	b.latch.Unlock()
	return page.NewWriteGuard(pageID, frame, b.replacer, &b.latch)
}

// DeletePage removes pageID from the database, both on disk and in
// memory. Returns false if the page is resident and
// pinned; true otherwise (including when the page was never resident).
func (b *BufferPoolManager) DeletePage(pageID types.PageID) bool {
	if pageID == types.InvalidPageID {
		return true
	}

	b.latch.Lock()
	defer b.latch.Unlock()

	if frameID, ok := b.pageTable[pageID]; ok {
		frame := b.frames[frameID]
		if frame.PinCount() > 0 {
			return false
		}
		delete(b.pageTable, pageID)
		b.replacer.Remove(frameID)
		frame.Reset()
		b.freeList = append(b.freeList, frameID)
	}

	b.scheduler.DeallocatePage(pageID)
	return true
}

// CheckedReadPage acquires an optional read-locked guard over pageID,
// implementing the fetch-or-load algorithm of spec §4.3.2. Returns
// (nil, false) if no frame can be obtained (OUT_OF_MEMORY).
func (b *BufferPoolManager) CheckedReadPage(pageID types.PageID, accessType types.AccessType) (*page.ReadPageGuard, bool) {
	if pageID == types.InvalidPageID {
		return nil, false
	}

	b.latch.Lock()

	if frameID, ok := b.pageTable[pageID]; ok {
		frame := b.frames[frameID]
		frame.IncPinCount()
		b.replacer.SetEvictable(frameID, false)
		b.replacer.RecordAccess(frameID, accessType)
		b.latch.Unlock()
		return page.NewReadGuard(pageID, frame, b.replacer, &b.latch), true
	}

	frameID, ok := b.acquireFrame()
	if !ok {
		b.latch.Unlock()
		return nil, false
	}
	frame := b.frames[frameID]

	if err := b.evictAndLoad(frame, pageID, false); err != nil {
		b.latch.Unlock()
		common.SH_Assert(false, fmt.Sprintf("BufferPoolManager.CheckedReadPage: %v", err))
	}
	b.pinAndTrack(frame, accessType)

	b.latch.Unlock()
	return page.NewReadGuard(pageID, frame, b.replacer, &b.latch), true
}

// CheckedWritePage is CheckedReadPage's exclusive-access counterpart.
func (b *BufferPoolManager) CheckedWritePage(pageID types.PageID, accessType types.AccessType) (*page.WritePageGuard, bool) {
	if pageID == types.InvalidPageID {
		return nil, false
	}

	b.latch.Lock()

	if frameID, ok := b.pageTable[pageID]; ok {
		frame := b.frames[frameID]
		frame.IncPinCount()
		b.replacer.SetEvictable(frameID, false)
		b.replacer.RecordAccess(frameID, accessType)
		b.latch.Unlock()
		return page.NewWriteGuard(pageID, frame, b.replacer, &b.latch), true
	}

	frameID, ok := b.acquireFrame()
	if !ok {
		b.latch.Unlock()
		return nil, false
	}
	frame := b.frames[frameID]

	if err := b.evictAndLoad(frame, pageID, false); err != nil {
		b.latch.Unlock()
		common.SH_Assert(false, fmt.Sprintf("BufferPoolManager.CheckedWritePage: %v", err))
	}
	b.pinAndTrack(frame, accessType)

	b.latch.Unlock()
	return page.NewWriteGuard(pageID, frame, b.replacer, &b.latch), true
}

// ReadPage wraps CheckedReadPage, aborting the process if no frame could
// be obtained. Convenience wrapper for tests.
func (b *BufferPoolManager) ReadPage(pageID types.PageID, accessType types.AccessType) *page.ReadPageGuard {
	guard, ok := b.CheckedReadPage(pageID, accessType)
	common.SH_Assert(ok, fmt.Sprintf("CheckedReadPage failed to bring in page %d", pageID))
	return guard
}

// WritePage wraps CheckedWritePage, aborting the process if no frame
// could be obtained.
func (b *BufferPoolManager) WritePage(pageID types.PageID, accessType types.AccessType) *page.WritePageGuard {
	guard, ok := b.CheckedWritePage(pageID, accessType)
	common.SH_Assert(ok, fmt.Sprintf("CheckedWritePage failed to bring in page %d", pageID))
	return guard
}

// FlushPage writes pageID's data to disk if resident, clearing dirty.
// Returns false if pageID is not resident.
func (b *BufferPoolManager) FlushPage(pageID types.PageID) bool {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return false
	}
	frame := b.frames[frameID]
	if err := b.scheduler.ScheduleWrite(pageID, frame.Data()[:]); err != nil {
		common.SH_Assert(false, fmt.Sprintf("BufferPoolManager.FlushPage: %v", err))
	}
	frame.SetDirty(false)
	b.walNotifier.NotifyPageWrite(pageID)
	return true
}

// FlushAllPages flushes every resident page to disk.
func (b *BufferPoolManager) FlushAllPages() {
	b.latch.Lock()
	pageIDs := make([]types.PageID, 0, len(b.pageTable))
	for pid := range b.pageTable {
		pageIDs = append(pageIDs, pid)
	}
	b.latch.Unlock()

	for _, pid := range pageIDs {
		b.FlushPage(pid)
	}
}

// GetPinCount returns pageID's current pin count, or (0, false) if the
// page is not resident. Intended for testing.
func (b *BufferPoolManager) GetPinCount(pageID types.PageID) (int64, bool) {
	b.latch.Lock()
	defer b.latch.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return 0, false
	}
	return b.frames[frameID].PinCount(), true
}
