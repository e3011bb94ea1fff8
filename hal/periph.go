//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"ssdui/ssd1306"
)

// PeriphConfig selects the buses and pins of a Linux board driven through
// periph.io.
type PeriphConfig struct {
	// I2C names the bus, "" picks the first one registered.
	I2C  string
	Addr uint16

	// SPI selects a 4-wire SPI panel instead of I2C when set. DC is
	// required, CS is optional.
	SPI   string
	SPIHz physic.Frequency
	DC    string
	CS    string

	// Chunk caps the payload of one bus transaction.
	Chunk int

	// Buttons maps button names (ButtonUp...) to GPIO names. Missing
	// buttons are left out.
	Buttons map[string]string
}

// Periph is the HAL of a Linux board.
type Periph struct {
	logger  *hostLogger
	r       Renderer
	gpio    GPIO
	closers []io.Closer
}

type periphOpeners struct {
	i2c func(name string) (i2c.BusCloser, error)
	spi func(name string) (spi.PortCloser, error)
	pin func(name string) gpio.PinIO
}

// OpenPeriph initializes the host drivers and opens the display bus and
// button lines.
func OpenPeriph(cfg PeriphConfig) (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hal: periph init: %w", err)
	}
	return openPeriph(cfg, periphOpeners{
		i2c: i2creg.Open,
		spi: spireg.Open,
		pin: gpioreg.ByName,
	})
}

func openPeriph(cfg PeriphConfig, o periphOpeners) (*Periph, error) {
	p := &Periph{logger: &hostLogger{w: os.Stdout}}
	if cfg.SPI != "" {
		if err := p.openSPI(cfg, o); err != nil {
			p.Close()
			return nil, err
		}
	} else {
		bus, err := o.i2c(cfg.I2C)
		if err != nil {
			return nil, fmt.Errorf("hal: open i2c %q: %w", cfg.I2C, err)
		}
		p.closers = append(p.closers, bus)
		p.r = ssd1306.NewI2C(bus, cfg.Addr, cfg.Chunk)
	}

	var pins []GPIOPin
	for _, name := range ButtonNames {
		pinName, ok := cfg.Buttons[name]
		if !ok {
			continue
		}
		pin := o.pin(pinName)
		if pin == nil {
			p.Close()
			return nil, fmt.Errorf("hal: button %s: no gpio %q", name, pinName)
		}
		pins = append(pins, &periphPin{name: name, pin: pin})
	}
	p.gpio = newPinSet(pins)
	return p, nil
}

func (p *Periph) openSPI(cfg PeriphConfig, o periphOpeners) error {
	if cfg.DC == "" {
		return errors.New("hal: spi display needs a D/C pin")
	}
	dc := o.pin(cfg.DC)
	if dc == nil {
		return fmt.Errorf("hal: no gpio %q for D/C", cfg.DC)
	}
	var cs ssd1306.Pin
	if cfg.CS != "" {
		pin := o.pin(cfg.CS)
		if pin == nil {
			return fmt.Errorf("hal: no gpio %q for CS", cfg.CS)
		}
		cs = outPin{pin}
	}
	port, err := o.spi(cfg.SPI)
	if err != nil {
		return fmt.Errorf("hal: open spi %q: %w", cfg.SPI, err)
	}
	p.closers = append(p.closers, port)
	hz := cfg.SPIHz
	if hz == 0 {
		hz = 8 * physic.MegaHertz
	}
	conn, err := port.Connect(hz, spi.Mode0, 8)
	if err != nil {
		return fmt.Errorf("hal: connect spi %q: %w", cfg.SPI, err)
	}
	p.r = ssd1306.NewSPI(conn, outPin{dc}, cs, cfg.Chunk)
	return nil
}

func (p *Periph) Logger() Logger     { return p.logger }
func (p *Periph) Renderer() Renderer { return p.r }
func (p *Periph) Buttons() GPIO      { return p.gpio }
func (p *Periph) Keyboard() Keyboard { return nullKeyboard{} }

// Close releases the buses.
func (p *Periph) Close() error {
	var errs []error
	for _, c := range p.closers {
		errs = append(errs, c.Close())
	}
	p.closers = nil
	return errors.Join(errs...)
}

// outPin adapts a periph output to ssd1306.Pin. Write errors surface as a
// failed bus transaction, so they are dropped here.
type outPin struct{ gpio.PinOut }

func (p outPin) High() { _ = p.Out(gpio.High) }
func (p outPin) Low()  { _ = p.Out(gpio.Low) }

// periphPin reads a button wired to a periph GPIO.
type periphPin struct {
	name string
	pin  gpio.PinIO
}

func (p *periphPin) Name() string { return p.name }

func (p *periphPin) HasPullUp() bool { return true }

func (p *periphPin) Configure(pull GPIOPull) error {
	pp := gpio.Float
	if pull == GPIOPullUp {
		pp = gpio.PullUp
	}
	if err := p.pin.In(pp, gpio.NoEdge); err != nil {
		return fmt.Errorf("gpio: pin %s: %w", p.name, err)
	}
	return nil
}

func (p *periphPin) Read() (bool, error) { return bool(p.pin.Read()), nil }
