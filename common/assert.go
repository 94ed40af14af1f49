package common

import (
	"runtime"

	"github.com/devlights/gomy/output"
)

// SH_Assert panics with msg when condition does not hold. Used to guard
// invariants that must never be violated by a correct caller (as opposed
// to ordinary, recoverable error conditions) — e.g. a victim frame that is
// still pinned. The goroutine dump is printed first
// since the panic unwinds the call stack that would otherwise explain it.
func SH_Assert(condition bool, msg string) {
	if !condition {
		DumpStack()
		panic(msg)
	}
}

// DumpStack prints every goroutine's stack trace, labeled so it can be
// told apart from normal log output. Called by SH_Assert immediately
// before it panics, to capture every goroutine's state at the moment a
// pin-count invariant violation is detected.
//
// REFERENCES
//   - https://pkg.go.dev/runtime#Stack
//   - https://stackoverflow.com/questions/19094099/how-to-dump-goroutine-stacktraces
func DumpStack() {
	getStack := func(all bool) []byte {
		buf := make([]byte, 1024)
		for {
			n := runtime.Stack(buf, all)
			if n < len(buf) {
				return buf[:n]
			}
			buf = make([]byte, 2*len(buf))
		}
	}
	output.Stdoutl("=== stack-all   ", string(getStack(true)))
}
