//go:build !tinygo && !cgo

package hal

import (
	"context"
	"fmt"
)

// WindowConfig controls the desktop window frontend.
type WindowConfig struct {
	HostConfig
	Scale int
}

func RunWindow(_ context.Context, _ WindowConfig, _ RunFunc) error {
	return fmt.Errorf("hal: window mode requires cgo (build with CGO_ENABLED=1): %w", ErrNotImplemented)
}
