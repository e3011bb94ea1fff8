package ssd1306

import "sync"

// SPIBus is the write half of a SPI connection. TinyGo's drivers.SPI and
// periph's spi.Conn both satisfy it.
type SPIBus interface {
	Tx(w, r []byte) error
}

// Pin is a digital output.
type Pin interface {
	High()
	Low()
}

// SPI drives the controller over 4-wire SPI. The D/C line selects command
// (low) or data (high). cs may be nil when chip select is tied low or
// handled by the bus.
type SPI struct {
	mu      sync.Mutex
	bus     SPIBus
	dc      Pin
	cs      Pin
	chunk   int
	lastErr error
}

func NewSPI(bus SPIBus, dc, cs Pin, chunk int) *SPI {
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	return &SPI{bus: bus, dc: dc, cs: cs, chunk: chunk}
}

func (d *SPI) Command(b []byte) int { return d.write(false, b) }
func (d *SPI) Data(b []byte) int    { return d.write(true, b) }

func (d *SPI) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

func (d *SPI) write(data bool, b []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bus == nil || d.dc == nil {
		d.lastErr = ErrNoBus
		return 0
	}
	if data {
		d.dc.High()
	} else {
		d.dc.Low()
	}
	if d.cs != nil {
		d.cs.Low()
		defer d.cs.High()
	}
	sent := 0
	for sent < len(b) {
		n := min(len(b)-sent, d.chunk)
		if err := d.bus.Tx(b[sent:sent+n], nil); err != nil {
			d.lastErr = err
			break
		}
		sent += n
	}
	return sent
}
