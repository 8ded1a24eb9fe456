// Package disk holds the DiskManager interface consumed by the buffer
// pool and the DiskScheduler that serializes page I/O onto a
// background worker.
package disk

import "github.com/1554823142/databaseCMU/types"

// DiskManager is the synchronous collaborator the buffer pool core
// treats as external: raw block I/O against the file system.
type DiskManager interface {
	ReadPage(pageID types.PageID, buf []byte) error
	WritePage(pageID types.PageID, buf []byte) error
	// IncreaseDiskSpace ensures backing storage exists for pageID.
	IncreaseDiskSpace(pageID types.PageID)
	DeallocatePage(pageID types.PageID)
	GetNumWrites() uint64
	ShutDown()
}
