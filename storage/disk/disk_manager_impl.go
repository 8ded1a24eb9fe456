package disk

import (
	"errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

// FileDiskManager is the file-backed DiskManager implementation.
type FileDiskManager struct {
	file      *os.File
	path      string
	size      int64
	numWrites atomic.Uint64
}

// NewFileDiskManager opens (creating if necessary) the database file at path.
func NewFileDiskManager(path string) (*FileDiskManager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileDiskManager{file: f, path: path, size: info.Size()}, nil
}

// WritePage persists buf (which must be common.PageSize bytes) at pageID's offset.
func (d *FileDiskManager) WritePage(pageID types.PageID, buf []byte) error {
	offset := int64(pageID) * common.PageSize
	if _, err := d.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	n, err := d.file.Write(buf)
	if err != nil {
		return err
	}
	if n != common.PageSize {
		return errors.New("disk: short write")
	}
	if err := d.file.Sync(); err != nil {
		return err
	}
	d.numWrites.Add(1)

	end := offset + int64(n)
	if end > d.size {
		d.size = end
		common.LogFileGrowth(d.path, d.size)
	}
	return nil
}

// ReadPage fills buf with pageID's on-disk contents, zero-filling any
// bytes past the end of the file.
func (d *FileDiskManager) ReadPage(pageID types.PageID, buf []byte) error {
	offset := int64(pageID) * common.PageSize
	info, err := d.file.Stat()
	if err != nil {
		return err
	}
	if offset >= info.Size() {
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

// IncreaseDiskSpace is a no-op: disk space is treated as elastic, the
// file is extended on demand during WritePage, and ReadPage zero-fills
// pages past the end of the file.
func (d *FileDiskManager) IncreaseDiskSpace(pageID types.PageID) {}

// DeallocatePage releases backing storage for pageID. Space reuse is not
// implemented; this is a no-op kept for interface symmetry and future
// extension.
func (d *FileDiskManager) DeallocatePage(pageID types.PageID) {}

// GetNumWrites returns the number of successful WritePage calls.
func (d *FileDiskManager) GetNumWrites() uint64 { return d.numWrites.Load() }

// ShutDown closes the backing file.
func (d *FileDiskManager) ShutDown() { d.file.Close() }
