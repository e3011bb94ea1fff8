//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"ssdui/internal/buildinfo"
)

// WindowConfig controls the desktop window frontend.
type WindowConfig struct {
	HostConfig
	Scale int
}

// RunWindow opens a desktop window showing the emulated panel and runs fn
// against a host HAL. Arrow keys and Enter drive the button lines. It
// blocks until the window closes or fn returns.
func RunWindow(ctx context.Context, cfg WindowConfig, fn RunFunc) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 4
	}
	h := NewHost(cfg.HostConfig)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := &hostGame{ctx: ctx, h: h, done: startApp(ctx, h, fn)}
	w, ht := h.emu.Size()
	ebiten.SetWindowTitle("ssdui (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*cfg.Scale, ht*cfg.Scale)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	cancel()
	if !g.finished {
		g.appErr = <-g.done
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return g.appErr
}

type hostGame struct {
	ctx context.Context
	h   *Host

	done     <-chan error
	finished bool
	appErr   error

	img   *image.RGBA
	fbImg *ebiten.Image
}

var windowKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.done:
		g.finished, g.appErr = true, err
		return ebiten.Termination
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	for _, k := range windowKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.h.Key(KeyEvent{Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			g.h.Key(KeyEvent{Code: k.code, Press: false})
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		g.h.Key(KeyEvent{Press: true, Rune: r})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	snap := g.h.emu.Snapshot()
	b := snap.Bounds()
	if g.img == nil || g.img.Bounds() != b {
		g.img = image.NewRGBA(b)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}

	dst := g.img.Pix
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			j := g.img.PixOffset(x, y)
			if snap.BitAt(x, y) == image1bit.On {
				dst[j+0], dst[j+1], dst[j+2] = 0xB0, 0xE0, 0xFF
			} else {
				dst[j+0], dst[j+1], dst[j+2] = 0x00, 0x00, 0x00
			}
			dst[j+3] = 0xFF
		}
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.emu.Size()
}
