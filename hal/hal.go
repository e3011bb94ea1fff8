// Package hal is the boundary between the runtime and a concrete board: the
// log sink, the display transport, the button lines and an optional
// keyboard.
package hal

import (
	"errors"
	"strings"

	"ssdui/ssd1306"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Renderer is the display's command/data transport.
type Renderer = ssd1306.Renderer

// Button pin names. Buttons are wired active low: a pressed button reads
// false.
const (
	ButtonUp    = "UP"
	ButtonDown  = "DOWN"
	ButtonLeft  = "LEFT"
	ButtonRight = "RIGHT"
	ButtonStart = "START"
)

// ButtonNames lists the buttons a board should provide, in pin order.
var ButtonNames = []string{ButtonUp, ButtonDown, ButtonLeft, ButtonRight, ButtonStart}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// HAL provides the only contact point between the runtime and the outside
// world.
type HAL interface {
	Logger() Logger
	Renderer() Renderer
	Buttons() GPIO
	Keyboard() Keyboard
}

// PinByName returns the pin of g called name, ignoring case, or nil.
func PinByName(g GPIO, name string) GPIOPin {
	if g == nil {
		return nil
	}
	for i := 0; i < g.PinCount(); i++ {
		p := g.Pin(i)
		if p != nil && strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	return nil
}

type nullKeyboard struct{}

func (nullKeyboard) Events() <-chan KeyEvent { return nil }

// ConfigureButtons prepares every pin of g for reading, with a pull-up
// where the pin has one.
func ConfigureButtons(g GPIO) error {
	if g == nil {
		return nil
	}
	for i := 0; i < g.PinCount(); i++ {
		p := g.Pin(i)
		if p == nil {
			continue
		}
		pull := GPIOPullNone
		if p.HasPullUp() {
			pull = GPIOPullUp
		}
		if err := p.Configure(pull); err != nil {
			return err
		}
	}
	return nil
}
