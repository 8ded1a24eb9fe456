package common

import (
	deadlock "github.com/sasha-s/go-deadlock"
)

// ReaderWriterLatch guards a single frame's data buffer (frame.rwlatch);
// held for the entire lifetime of a page guard.
type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

type readerWriterLatch struct {
	mutex deadlock.RWMutex
}

// NewRWLatch returns a frame-level reader/writer latch backed by
// go-deadlock, so a violation of the mandated pool_latch -> frame.rwlatch
// acquisition order is reported instead of hanging forever.
func NewRWLatch() ReaderWriterLatch {
	return &readerWriterLatch{}
}

func (l *readerWriterLatch) WLock()   { l.mutex.Lock() }
func (l *readerWriterLatch) WUnlock() { l.mutex.Unlock() }
func (l *readerWriterLatch) RLock()   { l.mutex.RLock() }
func (l *readerWriterLatch) RUnlock() { l.mutex.RUnlock() }

// Mutex is the pool-wide / replacer-internal / scheduler-queue mutex
// (pool_latch, replacer.mutex, scheduler.queue_mutex).
type Mutex struct {
	mutex deadlock.Mutex
}

func (m *Mutex) Lock()   { m.mutex.Lock() }
func (m *Mutex) Unlock() { m.mutex.Unlock() }
