package disk

import (
	"github.com/golang-collections/collections/queue"
	pair "github.com/notEpsilon/go-pair"

	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

// DiskRequest bundles a read or write of a page's data buffer with a
// single-shot completion signal. The completion signal is a capacity-1
// channel standing in for a promise/future pair.
type DiskRequest struct {
	IsWrite    bool
	PageID     types.PageID
	Data       []byte
	Completion chan error
}

// pageDataPair pairs a request's page id with its buffer handle; used
// when the scheduler needs to log or hand off both values at once.
type pageDataPair = pair.Pair[types.PageID, []byte]

// DiskScheduler decouples page I/O from the buffer pool's critical
// sections: a background worker drains a FIFO queue of
// requests and fulfills each one's completion signal in enqueue order.
type DiskScheduler struct {
	diskManager DiskManager
	mu          common.Mutex
	notEmpty    chan struct{}
	q           *queue.Queue
	done        chan struct{}
}

// NewDiskScheduler starts the background worker and returns a scheduler
// that dispatches page I/O to diskManager.
func NewDiskScheduler(diskManager DiskManager) *DiskScheduler {
	s := &DiskScheduler{
		diskManager: diskManager,
		notEmpty:    make(chan struct{}, 1),
		q:           queue.New(),
		done:        make(chan struct{}),
	}
	go s.startWorkerThread()
	return s
}

// Schedule enqueues r and returns immediately; r.Completion is fulfilled
// once the worker has processed it.
func (s *DiskScheduler) Schedule(r DiskRequest) {
	pd := pageDataPair{First: r.PageID, Second: r.Data}
	common.ShPrintf(common.DEBUG_INFO_DETAIL, "disk scheduler: enqueue pageID=%d bytes=%d\n", pd.First, len(pd.Second))

	s.mu.Lock()
	s.q.Enqueue(r)
	s.mu.Unlock()

	select {
	case s.notEmpty <- struct{}{}:
	default:
	}
}

// ScheduleWrite is a convenience wrapper that schedules a write request
// and blocks on its completion.
func (s *DiskScheduler) ScheduleWrite(pageID types.PageID, data []byte) error {
	done := make(chan error, 1)
	s.Schedule(DiskRequest{IsWrite: true, PageID: pageID, Data: data, Completion: done})
	return <-done
}

// ScheduleRead is the read-side counterpart of ScheduleWrite.
func (s *DiskScheduler) ScheduleRead(pageID types.PageID, data []byte) error {
	done := make(chan error, 1)
	s.Schedule(DiskRequest{IsWrite: false, PageID: pageID, Data: data, Completion: done})
	return <-done
}

// IncreaseDiskSpace forwards to the disk manager synchronously: it is
// not page I/O, so it needs no ordering against the request queue beyond
// "happens after page id allocation".
func (s *DiskScheduler) IncreaseDiskSpace(pageID types.PageID) {
	s.diskManager.IncreaseDiskSpace(pageID)
}

// DeallocatePage forwards to the disk manager synchronously.
func (s *DiskScheduler) DeallocatePage(pageID types.PageID) {
	s.diskManager.DeallocatePage(pageID)
}

// Shutdown enqueues the sentinel stop marker and waits for the worker to exit.
func (s *DiskScheduler) Shutdown() {
	s.mu.Lock()
	s.q.Enqueue(stopMarker{})
	s.mu.Unlock()
	select {
	case s.notEmpty <- struct{}{}:
	default:
	}
	<-s.done
}

type stopMarker struct{}

// startWorkerThread dequeues requests in FIFO order and executes them
// against the disk manager, fulfilling each completion signal afterward.
// Exits only on the sentinel stop marker.
func (s *DiskScheduler) startWorkerThread() {
	defer close(s.done)
	for {
		req, ok := s.dequeue()
		if !ok {
			<-s.notEmpty
			continue
		}
		if _, stop := req.(stopMarker); stop {
			return
		}

		r := req.(DiskRequest)
		var err error
		if r.IsWrite {
			err = s.diskManager.WritePage(r.PageID, r.Data)
		} else {
			err = s.diskManager.ReadPage(r.PageID, r.Data)
		}
		r.Completion <- err
	}
}

func (s *DiskScheduler) dequeue() (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.q.Len() == 0 {
		return nil, false
	}
	return s.q.Dequeue(), true
}
