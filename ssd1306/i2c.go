package ssd1306

import (
	"sync"

	"tinygo.org/x/drivers"
)

// DefaultChunk is the largest payload sent in one I2C transaction, not
// counting the control byte. It holds a full 128-column page row.
const DefaultChunk = 128

// I2C drives the controller over an I2C bus. TinyGo's machine.I2C and
// periph's i2c.Bus both satisfy drivers.I2C.
type I2C struct {
	mu      sync.Mutex
	bus     drivers.I2C
	addr    uint16
	chunk   int
	buf     []byte
	lastErr error
}

// NewI2C returns a renderer for the device at addr (0 selects Address).
// chunk <= 0 selects DefaultChunk.
func NewI2C(bus drivers.I2C, addr uint16, chunk int) *I2C {
	if addr == 0 {
		addr = Address
	}
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	return &I2C{
		bus:   bus,
		addr:  addr,
		chunk: chunk,
		buf:   make([]byte, chunk+1),
	}
}

// Command sends controller commands.
func (d *I2C) Command(b []byte) int { return d.write(ControlCommand, b) }

// Data writes GDDRAM bytes at the current pointer.
func (d *I2C) Data(b []byte) int { return d.write(ControlData, b) }

// Err returns the error of the last failed transaction, if any.
func (d *I2C) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

func (d *I2C) write(control byte, b []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bus == nil {
		d.lastErr = ErrNoBus
		return 0
	}
	sent := 0
	for sent < len(b) {
		n := min(len(b)-sent, d.chunk)
		d.buf[0] = control
		copy(d.buf[1:], b[sent:sent+n])
		if err := d.bus.Tx(d.addr, d.buf[:n+1], nil); err != nil {
			d.lastErr = err
			break
		}
		sent += n
	}
	return sent
}
