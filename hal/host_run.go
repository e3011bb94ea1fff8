//go:build !tinygo

package hal

import (
	"context"
	"errors"
)

// startApp runs fn on its own goroutine. The returned channel yields its
// result once, with cancellation reported as nil.
func startApp(ctx context.Context, h HAL, fn RunFunc) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := fn(ctx, h)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		done <- err
	}()
	return done
}
