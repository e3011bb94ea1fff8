// Package input turns raw button lines, timers and key events into runtime
// events.
package input

import "time"

const (
	DefaultPollInterval = 10 * time.Millisecond
	DefaultDebounce     = 50 * time.Millisecond
	DefaultLongPress    = 800 * time.Millisecond
)

// Gesture is what a Button reports after a sample.
type Gesture uint8

const (
	None Gesture = iota
	Press
	Release
	Click
	LongPress
)

func (g Gesture) String() string {
	switch g {
	case Press:
		return "press"
	case Release:
		return "release"
	case Click:
		return "click"
	case LongPress:
		return "long-press"
	default:
		return "none"
	}
}

// Button debounces one active-low switch and detects clicks and long
// presses. It is fed samples at a steady rate and is not safe for
// concurrent use.
type Button struct {
	Debounce  time.Duration
	LongPress time.Duration

	// ActiveHigh inverts the line polarity.
	ActiveHigh bool

	raw      bool
	rawSince time.Time
	stable   bool
	downAt   time.Time
	longSent bool
}

// NewButton returns a button with the default timings.
func NewButton() *Button {
	return &Button{Debounce: DefaultDebounce, LongPress: DefaultLongPress}
}

// Pressed reports the debounced state.
func (b *Button) Pressed() bool { return b.stable }

// Update feeds the line level sampled at now. A debounced press reports
// Press. Letting go reports Click, or Release if LongPress was already
// reported; LongPress fires once while the button is still held.
func (b *Button) Update(level bool, now time.Time) Gesture {
	pressed := level == b.ActiveHigh
	if pressed != b.raw || b.rawSince.IsZero() {
		b.raw = pressed
		b.rawSince = now
	}

	if b.raw != b.stable && now.Sub(b.rawSince) >= b.Debounce {
		b.stable = b.raw
		if b.stable {
			b.downAt = now
			b.longSent = false
			return Press
		}
		if b.longSent {
			return Release
		}
		return Click
	}

	if b.stable && !b.longSent && b.LongPress > 0 && now.Sub(b.downAt) >= b.LongPress {
		b.longSent = true
		return LongPress
	}
	return None
}
