package disk

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/dsnet/golib/memfile"

	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

// MemDiskManager is an in-memory DiskManager test double, backed by
// memfile instead of a temp file on the real filesystem. The buffer pool
// and disk scheduler tests use it so they never touch the filesystem.
type MemDiskManager struct {
	mu        sync.Mutex
	file      *memfile.File
	size      int64
	numWrites atomic.Uint64
}

// NewMemDiskManager returns a fresh, empty in-memory DiskManager.
func NewMemDiskManager() *MemDiskManager {
	return &MemDiskManager{file: memfile.New(nil)}
}

func (d *MemDiskManager) WritePage(pageID types.PageID, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageID) * common.PageSize
	if _, err := d.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	n, err := d.file.Write(buf)
	if err != nil {
		return err
	}
	d.numWrites.Add(1)
	if end := offset + int64(n); end > d.size {
		d.size = end
	}
	return nil
}

func (d *MemDiskManager) ReadPage(pageID types.PageID, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageID) * common.PageSize
	if offset >= d.size {
		for i := range buf {
			buf[i] = 0
		}
		return nil
	}
	if _, err := d.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	n, err := d.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return nil
}

func (d *MemDiskManager) IncreaseDiskSpace(pageID types.PageID) {}

func (d *MemDiskManager) DeallocatePage(pageID types.PageID) {}

func (d *MemDiskManager) GetNumWrites() uint64 { return d.numWrites.Load() }

func (d *MemDiskManager) ShutDown() {}

// Checksum returns the xxhash of pageID's current on-disk bytes, used by
// disk-scheduler tests to verify a write/read round trip without
// comparing whole 4KB buffers (property P4).
func (d *MemDiskManager) Checksum(pageID types.PageID) uint64 {
	buf := make([]byte, common.PageSize)
	_ = d.ReadPage(pageID, buf)
	return xxhash.Sum64(buf)
}
