package input

import (
	"context"

	"ssdui/hal"
	"ssdui/ui"
)

// Keys forwards key presses from a keyboard as events. Codes are looked
// up first, then runes.
type Keys[E comparable, S any] struct {
	Keyboard hal.Keyboard
	Codes    map[hal.KeyCode]E
	Runes    map[rune]E
}

func (k *Keys[E, S]) Mount(c *ui.Context[E, S]) error {
	if k.Keyboard == nil {
		return nil
	}
	ch := k.Keyboard.Events()
	if ch == nil {
		return nil
	}
	c.Go(func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-ch:
				if !ok {
					return nil
				}
				if e, ok := k.Lookup(ev); ok {
					c.Trigger(e)
				}
			}
		}
	})
	return nil
}

func (k *Keys[E, S]) Render(*ui.Context[E, S]) {}

// Lookup returns the event for a key press. Releases never map.
func (k *Keys[E, S]) Lookup(ev hal.KeyEvent) (E, bool) {
	var zero E
	if !ev.Press {
		return zero, false
	}
	if e, ok := k.Codes[ev.Code]; ok && ev.Code != hal.KeyUnknown {
		return e, true
	}
	if ev.Rune != 0 {
		if e, ok := k.Runes[ev.Rune]; ok {
			return e, true
		}
	}
	return zero, false
}
