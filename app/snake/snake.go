// Package snake is the demo application: a snake game on a 4 px grid,
// driven by the button lines, the keyboard and a tick timer.
package snake

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"

	"ssdui/draw"
	"ssdui/geom"
	"ssdui/hal"
	"ssdui/input"
	"ssdui/logging"
	"ssdui/ssd1306"
	"ssdui/ui"
	"ssdui/widget"
)

type Event uint8

const (
	KeyUp Event = iota + 1
	KeyDown
	KeyLeft
	KeyRight
	KeyStart
	Tick
	FoodEaten
	GameStart
	GameOver
	Invert
)

func (e Event) String() string {
	switch e {
	case KeyUp:
		return "key-up"
	case KeyDown:
		return "key-down"
	case KeyLeft:
		return "key-left"
	case KeyRight:
		return "key-right"
	case KeyStart:
		return "key-start"
	case Tick:
		return "tick"
	case FoodEaten:
		return "food-eaten"
	case GameStart:
		return "game-start"
	case GameOver:
		return "game-over"
	case Invert:
		return "invert"
	default:
		return fmt.Sprintf("event(%d)", uint8(e))
	}
}

type Ctx = ui.Context[Event, State]

const (
	// Cell is the side of one grid cell in pixels.
	Cell = 4

	DefaultTick = 300 * time.Millisecond
)

type Options struct {
	// Seed for food placement. Zero picks one from the clock.
	Seed uint32

	Buttons  hal.GPIO
	Keyboard hal.Keyboard

	// Tick is the step interval. Zero selects DefaultTick, negative
	// disables the timer so steps only come from Tick events.
	Tick time.Duration

	// Now drives animations and button timing. Defaults to time.Now.
	Now func() time.Time
}

// NewContext builds the game's runtime context on r.
func NewContext(cfg ssd1306.Config, r ui.Renderer, o Options, opts ...ui.Option) (*Ctx, error) {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Seed == 0 {
		o.Seed = uint32(o.Now().UnixNano())
	}
	initial := NewState(cfg.Width/Cell, cfg.Height()/Cell, o.Seed)
	opts = append(opts, ui.WithStore(initial))
	return ui.New[Event, State](cfg, r, New(cfg.Width, cfg.Height(), o), opts...)
}

// New returns the root component for a width x height panel.
func New(width, height int, o Options) ui.Component[Event, State] {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Tick == 0 {
		o.Tick = DefaultTick
	}

	title := &widget.Tween[Event, State]{
		From:     geom.Pt(0, -2),
		To:       geom.Pt(0, 28),
		Duration: 1200 * time.Millisecond,
		Ease:     ease.OutBounce,
		Now:      o.Now,
		Draw: func(c *Ctx, at geom.Point) {
			const s = "SNAKE"
			x := (width - draw.LabelWidth(nil, s)) / 2
			draw.Label(c.Buffer(), nil, geom.Pt(x, at.Y), s)
		},
	}
	blink := func(*Ctx) bool { return o.Now().UnixMilli()/500%2 == 0 }
	// A component mounts once per tree position, so each screen gets its own.
	pressStart := func() ui.Component[Event, State] {
		return &ui.Visible[Event, State]{
			Show: blink,
			Child: &widget.Text[Event, State]{
				At:       geom.Pt(width/2, height-4),
				Value:    func(*Ctx) string { return "PRESS START" },
				Centered: true,
			},
		}
	}

	ready := ui.NewGroup[Event, State](title, pressStart())
	running := ui.RenderFunc[Event, State](renderBoard)
	failed := ui.NewGroup[Event, State](
		&widget.Label[Event, State]{
			At: geom.Pt((width-draw.LabelWidth(nil, "GAME OVER"))/2, 24),
			Value: func(*Ctx) string {
				return "GAME OVER"
			},
		},
		&widget.Text[Event, State]{
			At:       geom.Pt(width/2, 40),
			Centered: true,
			Value: func(c *Ctx) string {
				s := c.Store().Load()
				return fmt.Sprintf("SCORE %d  BEST %d", s.Score, s.Best)
			},
		},
		pressStart(),
	)

	root := ui.NewGroup[Event, State](
		&game{},
		&input.Scanner[Event, State]{Bindings: bindings(o.Buttons), Now: o.Now},
		&input.Keys[Event, State]{
			Keyboard: o.Keyboard,
			Codes: map[hal.KeyCode]Event{
				hal.KeyUp:    KeyUp,
				hal.KeyDown:  KeyDown,
				hal.KeyLeft:  KeyLeft,
				hal.KeyRight: KeyRight,
				hal.KeyEnter: KeyStart,
			},
			Runes: map[rune]Event{
				'w': KeyUp, 'a': KeyLeft, 's': KeyDown, 'd': KeyRight,
				' ': KeyStart, 'i': Invert,
			},
		},
		onPhase(Ready, ready),
		onPhase(Running, running),
		onPhase(Failed, failed),
	)
	if o.Tick > 0 {
		root.Add(&input.Every[Event, State]{Interval: o.Tick, Event: Tick})
	}
	return root
}

func onPhase(p Phase, child ui.Component[Event, State]) *ui.Visible[Event, State] {
	return &ui.Visible[Event, State]{
		Show:  func(c *Ctx) bool { return c.Store().Load().Phase == p },
		Child: child,
	}
}

// bindings maps the button lines present on g. Directions fire on press
// for responsiveness; START fires on click, and a long press inverts the
// panel.
func bindings(g hal.GPIO) []input.Binding[Event] {
	var out []input.Binding[Event]
	dirs := []struct {
		name string
		e    Event
	}{
		{hal.ButtonUp, KeyUp},
		{hal.ButtonDown, KeyDown},
		{hal.ButtonLeft, KeyLeft},
		{hal.ButtonRight, KeyRight},
	}
	for _, d := range dirs {
		if p := hal.PinByName(g, d.name); p != nil {
			out = append(out, input.OnPress[Event](p, d.e))
		}
	}
	if p := hal.PinByName(g, hal.ButtonStart); p != nil {
		out = append(out, input.Binding[Event]{
			Line: p,
			On:   map[input.Gesture]Event{input.Click: KeyStart, input.LongPress: Invert},
		})
	}
	return out
}

func renderBoard(c *Ctx) {
	s := c.Store().Load()
	b := c.Buffer()
	for _, p := range s.Body {
		draw.Rect(b, geom.R(p.X*Cell, p.Y*Cell, Cell, Cell))
	}
	if s.Food.X >= 0 {
		draw.Frame(b, geom.R(s.Food.X*Cell, s.Food.Y*Cell, Cell, Cell))
	}
	score := fmt.Sprint(s.Score)
	draw.Text(b, nil, geom.Pt(b.Width()-draw.TextWidth(nil, score)-1, 7), score)
}

// game owns the listeners that move the state along.
type game struct{}

func (g *game) Mount(c *Ctx) error {
	steer := func(d geom.Point) func(*Ctx, any) {
		return func(c *Ctx, _ any) {
			if c.Store().Load().Phase == Ready {
				c.Trigger(GameStart)
				return
			}
			c.Store().Update(func(s *State) { s.Steer(d) })
		}
	}
	c.Register(KeyUp, steer(Up))
	c.Register(KeyDown, steer(Down))
	c.Register(KeyLeft, steer(Left))
	c.Register(KeyRight, steer(Right))

	c.Register(KeyStart, func(c *Ctx, _ any) {
		if c.Store().Load().Phase != Running {
			c.Trigger(GameStart)
		}
	})
	c.Register(GameStart, func(c *Ctx, _ any) {
		c.Store().Update(func(s *State) { s.Start() })
		logging.Logger().Info("snake: game start")
	})
	c.Register(Tick, func(c *Ctx, _ any) {
		var ate, died bool
		c.Store().Update(func(s *State) { ate, died = s.Step() })
		if ate {
			c.Trigger(FoodEaten)
		}
		if died {
			c.Trigger(GameOver)
		}
	})
	c.Register(FoodEaten, func(c *Ctx, _ any) {
		s := c.Store().Load()
		logging.Logger().Debug("snake: food eaten", "score", s.Score, "length", len(s.Body))
	})
	c.Register(GameOver, func(c *Ctx, _ any) {
		s := c.Store().Load()
		logging.Logger().Info("snake: game over", "score", s.Score, "best", s.Best)
	})
	c.Register(Invert, func(c *Ctx, _ any) {
		if err := c.Config().SetInvert(!c.Config().Inverted()); err != nil {
			logging.Logger().Warn("snake: invert", "err", err)
		}
	})
	return nil
}

func (g *game) Render(*Ctx) {}
