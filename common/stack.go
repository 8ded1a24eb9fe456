package common

import "runtime"

// allStacks returns the stack trace of every live goroutine, growing the
// scratch buffer until the trace fits.
func allStacks() []byte {
	buf := make([]byte, 1<<16)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
}
