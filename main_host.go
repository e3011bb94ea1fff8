//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"ssdui/app"
	"ssdui/hal"
)

func main() {
	var (
		opts     app.Options
		headless bool
		terminal bool
		autoplay bool
		duration time.Duration
		scale    int
		i2cBus   string
		spiPort  string
		dcPin    string
		addr     uint
		buttons  string
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.BoolVar(&terminal, "terminal", false, "Show the panel in the terminal.")
	flag.BoolVar(&autoplay, "autoplay", false, "Press buttons periodically in headless mode.")
	flag.DurationVar(&duration, "duration", 0, "Stop after this long in headless mode (0 = run until interrupted).")
	flag.IntVar(&scale, "scale", 4, "Window pixels per panel pixel.")
	flag.Uint64Var(&opts.Frames, "frames", 0, "Stop after N frames (0 = run forever).")
	flag.IntVar(&opts.FPS, "fps", 0, "Frame rate (0 = default).")
	flag.IntVar(&opts.Contrast, "contrast", 0, "Panel contrast 1-255 (0 = default).")
	flag.BoolVar(&opts.Flip, "flip", false, "Rotate the panel by 180 degrees.")
	flag.BoolVar(&opts.FullRefresh, "full-refresh", false, "Rewrite the whole panel on the first frame.")
	flag.BoolVar(&opts.Verbose, "v", false, "Debug logging.")
	flag.StringVar(&i2cBus, "i2c", "", "Drive real hardware on this periph I2C bus (\"-\" = first bus).")
	flag.StringVar(&spiPort, "spi", "", "Drive real hardware on this periph SPI port.")
	flag.StringVar(&dcPin, "dc", "", "D/C GPIO for -spi.")
	flag.UintVar(&addr, "addr", 0x3C, "I2C address of the panel.")
	flag.StringVar(&buttons, "buttons", "", "Button GPIOs for hardware, e.g. UP=GPIO5,START=GPIO26.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := func(ctx context.Context, h hal.HAL) error {
		defer app.Recover(h, opts.Config)
		return app.Run(ctx, h, opts)
	}

	var err error
	switch {
	case i2cBus != "" || spiPort != "":
		err = runPeriph(ctx, i2cBus, spiPort, dcPin, uint16(addr), buttons, run)
	case terminal:
		err = hal.RunTerminal(ctx, hal.TerminalConfig{}, run)
	case headless:
		err = hal.RunHeadless(ctx, hal.HeadlessConfig{Duration: duration, Autoplay: autoplay, Dump: true}, run)
	default:
		err = hal.RunWindow(ctx, hal.WindowConfig{Scale: scale}, run)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPeriph(ctx context.Context, bus, port, dc string, addr uint16, buttons string, run hal.RunFunc) error {
	if bus == "-" {
		bus = ""
	}
	pins, err := parseButtons(buttons)
	if err != nil {
		return err
	}
	p, err := hal.OpenPeriph(hal.PeriphConfig{I2C: bus, Addr: addr, SPI: port, DC: dc, Buttons: pins})
	if err != nil {
		return err
	}
	defer p.Close()
	return run(ctx, p)
}

func parseButtons(s string) (map[string]string, error) {
	out := make(map[string]string)
	if s == "" {
		return out, nil
	}
	for _, kv := range strings.Split(s, ",") {
		name, pin, ok := strings.Cut(kv, "=")
		if !ok || pin == "" {
			return nil, fmt.Errorf("bad button mapping %q", kv)
		}
		out[strings.ToUpper(strings.TrimSpace(name))] = strings.TrimSpace(pin)
	}
	return out, nil
}
