package common

import (
	"fmt"

	"github.com/devlights/gomy/output"
)

// SH_Assert panics with msg if condition is false. Used for
// INVARIANT_VIOLATION-tier errors: programmer errors
// that must abort the process rather than be recovered from.
func SH_Assert(condition bool, msg string) {
	if !condition {
		DumpGoroutineStacks()
		panic(msg)
	}
}

// DumpGoroutineStacks prints every goroutine's stack trace. Called right
// before an invariant-violation panic so a crash report shows exactly
// which goroutines were holding which latches.
func DumpGoroutineStacks() {
	output.Stdoutl("=== goroutine dump ===", fmt.Sprintf("%s", allStacks()))
}
