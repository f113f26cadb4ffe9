package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// cleanup is invoked before the crash report so the terminal (or any other
// exclusively held resource) is restored to a sane state first
var cleanup atomic.Pointer[func()]

// SetCrashCleanup registers a function run before the crash report on panic
func SetCrashCleanup(fn func()) {
	cleanup.Store(&fn)
}

// HandleCrash is the unified panic handler: restore, report, exit
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := cleanup.Load(); fn != nil {
		(*fn)()
	}

	fmt.Fprintf(os.Stderr, "\r\nCRASH DETECTED: %v\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so a crashed simulation loop still
// restores the terminal before reporting.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
