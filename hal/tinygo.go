//go:build tinygo && baremetal

package hal

import (
	"machine"

	"ssdui/ssd1306"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	r      Renderer
	gpio   GPIO
}

// New returns the HAL of a Raspberry Pi Pico with the panel on I2C0.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// I2C0: GP4 (SDA) / GP5 (SCL), 400 kHz, panel at 0x3C.
// Buttons: GP10..GP14 to ground (UP, DOWN, LEFT, RIGHT, START).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	bus := machine.I2C0
	bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	})

	buttons := []machine.Pin{machine.GP10, machine.GP11, machine.GP12, machine.GP13, machine.GP14}
	pins := make([]GPIOPin, 0, len(buttons))
	for i, p := range buttons {
		pins = append(pins, &machinePin{name: ButtonNames[i], pin: p})
	}

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    &pinLED{pin: ledPin},
		r:      ssd1306.NewI2C(bus, ssd1306.Address, 0),
		gpio:   newPinSet(pins),
	}
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) Renderer() Renderer { return h.r }
func (h *tinyGoHAL) Buttons() GPIO      { return h.gpio }
func (h *tinyGoHAL) Keyboard() Keyboard { return nullKeyboard{} }
func (h *tinyGoHAL) LED() LED           { return h.led }
