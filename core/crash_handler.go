package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores an outer resource, typically the terminal, before a crash report is printed
type Finalizer interface {
	Fini()
}

var (
	crashMu        sync.Mutex
	crashFinalizer Finalizer
	crashExit      = os.Exit
)

// RegisterCrashFinalizer installs f to run before the stack trace is printed
func RegisterCrashFinalizer(f Finalizer) {
	crashMu.Lock()
	crashFinalizer = f
	crashMu.Unlock()
}

// HandleCrash finalizes the registered resource, prints the panic with its stack and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	f := crashFinalizer
	crashMu.Unlock()
	if f != nil {
		f.Fini()
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	crashExit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crash restores the terminal
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
