package ui

import (
	"fmt"
	"runtime/debug"
)

// PanicError is a panic recovered from a component's Render or from a
// background activity. The ticker stops and returns it from Run so the
// caller can report it on its own goroutine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("ui: panic: %v", e.Value) }

// catch converts a panic in fn into a *PanicError.
func catch(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
