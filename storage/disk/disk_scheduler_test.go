package disk

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1554823142/databaseCMU/common"
	"github.com/1554823142/databaseCMU/types"
)

func TestDiskSchedulerWriteThenReadRoundTrip(t *testing.T) {
	mem := NewMemDiskManager()
	s := NewDiskScheduler(mem)
	defer s.Shutdown()

	write := make([]byte, common.PageSize)
	copy(write, "round-trip-payload")
	require.NoError(t, s.ScheduleWrite(types.PageID(3), write))

	read := make([]byte, common.PageSize)
	require.NoError(t, s.ScheduleRead(types.PageID(3), read))

	assert.Equal(t, write, read)
}

// P4: a successful flush (here, a scheduled write) must be visible to the
// disk manager before the completion signal fires, verified via checksum
// rather than comparing whole 4KB buffers.
func TestDiskSchedulerWriteVisibleBeforeCompletion(t *testing.T) {
	mem := NewMemDiskManager()
	s := NewDiskScheduler(mem)
	defer s.Shutdown()

	write := make([]byte, common.PageSize)
	copy(write, "checksum-me")
	require.NoError(t, s.ScheduleWrite(types.PageID(1), write))

	want := xxhash.Sum64(write)
	got := mem.Checksum(types.PageID(1))
	assert.Equal(t, want, got)
}

// Requests for the same page id are serialized in enqueue order: the
// last of several writes submitted back to back wins.
func TestDiskSchedulerOrdersRequestsPerPage(t *testing.T) {
	mem := NewMemDiskManager()
	s := NewDiskScheduler(mem)
	defer s.Shutdown()

	var completions []chan error
	for i := 0; i < 5; i++ {
		buf := make([]byte, common.PageSize)
		buf[0] = byte(i)
		done := make(chan error, 1)
		s.Schedule(DiskRequest{IsWrite: true, PageID: types.PageID(0), Data: buf, Completion: done})
		completions = append(completions, done)
	}
	for _, c := range completions {
		require.NoError(t, <-c)
	}

	read := make([]byte, common.PageSize)
	require.NoError(t, s.ScheduleRead(types.PageID(0), read))
	assert.Equal(t, byte(4), read[0])
}

func TestDiskSchedulerReadOfUnwrittenPageIsZeroed(t *testing.T) {
	mem := NewMemDiskManager()
	s := NewDiskScheduler(mem)
	defer s.Shutdown()

	read := make([]byte, common.PageSize)
	for i := range read {
		read[i] = 0xFF
	}
	require.NoError(t, s.ScheduleRead(types.PageID(42), read))

	for _, b := range read {
		require.Equal(t, byte(0), b)
	}
}

func TestDiskSchedulerShutdownStopsWorker(t *testing.T) {
	mem := NewMemDiskManager()
	s := NewDiskScheduler(mem)
	s.Shutdown()

	select {
	case <-s.done:
	default:
		t.Fatal("worker goroutine did not exit after Shutdown")
	}
}
