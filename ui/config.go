package ui

import (
	"fmt"
	"sync"
	"time"

	"ssdui/ssd1306"
)

// RuntimeConfig is the context's live copy of the controller configuration.
// Setters are the only way to change it; each one sends the matching
// command before the new value is recorded.
type RuntimeConfig struct {
	mu  sync.Mutex
	cfg ssd1306.Config
	r   Renderer

	// Set when the controller's column/row mapping changed, so the next
	// frame rewrites the whole panel.
	remapped bool
}

func newRuntimeConfig(cfg ssd1306.Config, r Renderer) *RuntimeConfig {
	return &RuntimeConfig{cfg: cfg, r: r}
}

// Snapshot returns a copy of the whole configuration.
func (rc *RuntimeConfig) Snapshot() ssd1306.Config {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg
}

func (rc *RuntimeConfig) Width() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.Width
}

func (rc *RuntimeConfig) Pages() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.Pages
}

func (rc *RuntimeConfig) Height() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.Height()
}

func (rc *RuntimeConfig) FPS() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.FPS
}

func (rc *RuntimeConfig) FrameInterval() time.Duration {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.FrameInterval()
}

func (rc *RuntimeConfig) AddressingMode() ssd1306.AddressingMode {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.AddressingMode
}

func (rc *RuntimeConfig) Contrast() uint8 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.Contrast
}

func (rc *RuntimeConfig) Inverted() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.Inverse
}

func (rc *RuntimeConfig) DisplayOn() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.DisplayOn
}

// Flip reports the horizontal and vertical flip flags.
func (rc *RuntimeConfig) Flip() (horizontal, vertical bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg.HorizontalFlip, rc.cfg.VerticalFlip
}

// send must be called with rc.mu held.
func (rc *RuntimeConfig) send(what string, cmd []byte) error {
	if n := rc.r.Command(cmd); n != len(cmd) {
		return fmt.Errorf("ui: set %s: sent %d of %d bytes: %w", what, n, len(cmd), ssd1306.ErrShortWrite)
	}
	return nil
}

func (rc *RuntimeConfig) SetContrast(v uint8) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if err := rc.send("contrast", ssd1306.SetContrast(v)); err != nil {
		return err
	}
	rc.cfg.Contrast = v
	return nil
}

func (rc *RuntimeConfig) SetInvert(on bool) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if err := rc.send("invert", ssd1306.SetInvert(on)); err != nil {
		return err
	}
	rc.cfg.Inverse = on
	return nil
}

func (rc *RuntimeConfig) SetDisplayOn(on bool) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if err := rc.send("display", ssd1306.SetDisplay(on)); err != nil {
		return err
	}
	rc.cfg.DisplayOn = on
	return nil
}

func (rc *RuntimeConfig) SetEntireDisplayOn(on bool) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if err := rc.send("entire display", ssd1306.SetEntireOn(on)); err != nil {
		return err
	}
	rc.cfg.EntireDisplayOn = on
	return nil
}

// SetFlip mirrors the panel. The segment remap only applies to data
// written afterwards, so the next frame is a full refresh.
func (rc *RuntimeConfig) SetFlip(horizontal, vertical bool) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if err := rc.send("segment remap", ssd1306.SetSegmentRemap(horizontal)); err != nil {
		return err
	}
	rc.cfg.HorizontalFlip = horizontal
	rc.remapped = true
	if err := rc.send("com scan", ssd1306.SetCOMScan(vertical)); err != nil {
		return err
	}
	rc.cfg.VerticalFlip = vertical
	return nil
}

// SetFPS changes the frame rate from the next frame on.
func (rc *RuntimeConfig) SetFPS(fps int) error {
	if fps <= 0 {
		return fmt.Errorf("ui: fps %d must be positive", fps)
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cfg.FPS = fps
	return nil
}

func (rc *RuntimeConfig) takeRemapped() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	r := rc.remapped
	rc.remapped = false
	return r
}
