package hal

import (
	"fmt"
	"sync"
	"time"
)

// GPIOPull selects the bias of an input line.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
)

// GPIO is a set of button lines. Boards without buttons return an empty
// set.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is one digital input line.
type GPIOPin interface {
	Name() string

	// HasPullUp reports whether Configure accepts GPIOPullUp.
	HasPullUp() bool
	Configure(pull GPIOPull) error
	Read() (level bool, err error)
}

type pinSet []GPIOPin

func newPinSet(pins []GPIOPin) GPIO { return pinSet(pins) }

func (s pinSet) PinCount() int { return len(s) }

func (s pinSet) Pin(id int) GPIOPin {
	if id < 0 || id >= len(s) {
		return nil
	}
	return s[id]
}

// buttonPin is a host button line driven by a frontend. It idles high
// through its pull-up and reads low while pressed.
type buttonPin struct {
	mu    sync.Mutex
	name  string
	level bool
}

func newButtonPin(name string) *buttonPin {
	return &buttonPin{name: name, level: true}
}

func (p *buttonPin) Name() string    { return p.name }
func (p *buttonPin) HasPullUp() bool { return true }

func (p *buttonPin) Configure(pull GPIOPull) error {
	if pull != GPIOPullUp {
		return fmt.Errorf("gpio: pin %s: button needs a pull-up", p.name)
	}
	return nil
}

func (p *buttonPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

// set drives the line from outside, as the switch would.
func (p *buttonPin) set(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// signalPin is a free-running pulse train: high for the first `high` of
// every period since creation.
type signalPin struct {
	name   string
	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
}

func newSignalPin(name string, period, high time.Duration) GPIOPin {
	return newSignalPinWithClock(name, period, high, time.Now)
}

func newSignalPinWithClock(name string, period, high time.Duration, now func() time.Time) GPIOPin {
	if period <= 0 {
		period = time.Second
	}
	high = min(max(high, 0), period)
	return &signalPin{name: name, t0: now(), now: now, period: period, high: high}
}

func (p *signalPin) Name() string    { return p.name }
func (p *signalPin) HasPullUp() bool { return false }

func (p *signalPin) Configure(pull GPIOPull) error {
	if pull != GPIOPullNone {
		return fmt.Errorf("gpio: pin %s: pull unsupported", p.name)
	}
	return nil
}

func (p *signalPin) Read() (bool, error) {
	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return elapsed%p.period < p.high, nil
}

// invertedPin reads the opposite level of its source. It turns a signal
// that is high while "active" into an active-low button line.
type invertedPin struct {
	GPIOPin
}

func (p invertedPin) Read() (bool, error) {
	level, err := p.GPIOPin.Read()
	return !level, err
}
