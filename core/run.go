package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// CrashHandler is invoked for panics caught by Go
// Replaceable by the front end to restore the terminal before printing
var CrashHandler = func(r any) {
	fmt.Fprintf(os.Stderr, "\r\nCRASH DETECTED: %v\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so the terminal is cleaned up on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				CrashHandler(r)
			}
		}()
		fn()
	}()
}
