package common

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// LogLevel is a bitmask so callers can enable several levels at once.
type LogLevel int32

const (
	DEBUG_INFO_DETAIL LogLevel = 1
	DEBUG_INFO        LogLevel = 2
	INFO              LogLevel = 16
	WARN              LogLevel = 32
	ERROR             LogLevel = 64
	FATAL             LogLevel = 128
)

// ShPrintf prints fmtStr if logLevel is enabled in LogLevelSetting.
func ShPrintf(logLevel LogLevel, fmtStr string, a ...interface{}) {
	if logLevel&LogLevelSetting > 0 {
		fmt.Printf(fmtStr, a...)
	}
}

// LogFileGrowth reports a disk-backed file growing to newSize bytes,
// formatted with a human-readable size rather than a raw byte count.
func LogFileGrowth(path string, newSize int64) {
	ShPrintf(DEBUG_INFO, "disk manager: %s grew to %s\n", path, humanize.Bytes(uint64(newSize)))
}
