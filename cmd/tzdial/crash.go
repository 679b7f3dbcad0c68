package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// crashScreen is restored before a crash report is printed
var crashScreen tcell.Screen

// handleCrash restores the terminal and prints the stack trace
func handleCrash(r any) {
	if r == nil {
		return
	}
	if crashScreen != nil {
		crashScreen.Fini()
	}
	fmt.Fprintf(os.Stderr, "\n\x1b[31mTZDIAL CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// goSafe runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func goSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handleCrash(r)
			}
		}()
		fn()
	}()
}
