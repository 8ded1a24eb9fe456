// Package common holds the configuration constants, leveled logger, and
// assertion/lock helpers shared by every package in this module.
package common

import "time"

// PageSize is the fixed size, in bytes, of every page and frame buffer.
const PageSize = 4096

// InvalidPageID is the sentinel page id meaning "no page".
const InvalidPageID = -1

// InvalidFrameID is the sentinel frame id meaning "no frame".
const InvalidFrameID = ^uint32(0)

var (
	// EnableDebug is a debug switch, off by default. ShPrintf does not read
	// it; ShPrintf output is filtered by LogLevelSetting alone.
	EnableDebug bool = false
	// LogLevelSetting is the bitmask of LogLevel values that are printed.
	LogLevelSetting LogLevel = INFO | WARN | ERROR | FATAL

	// CycleDetectionInterval mirrors a transaction manager's deadlock
	// detection knob; unused by this core but kept so callers embedding a
	// transaction layer on top of the buffer pool have somewhere to put
	// it without reaching into this package's internals.
	CycleDetectionInterval time.Duration
)
