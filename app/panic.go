package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"ssdui/draw"
	"ssdui/framebuffer"
	"ssdui/geom"
	"ssdui/hal"
	"ssdui/ssd1306"
)

// Recover must be deferred directly. On a panic it writes the value and
// stack to the HAL logger, shows them on the panel and then halts: TinyGo
// builds park forever, host builds re-panic.
func Recover(h hal.HAL, cfg ssd1306.Config) {
	r := recover()
	if r == nil {
		return
	}
	reportPanic(h, cfg, r, debug.Stack())
	halt(r)
}

// reportPanic writes v and its stack to the HAL logger and shows them on
// the panel.
func reportPanic(h hal.HAL, cfg ssd1306.Config, v any, stack []byte) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("ssdui panic: %v", v))
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				l.WriteLineString(line)
			}
		}
	}
	if cfg.Width == 0 {
		cfg = ssd1306.DefaultConfig()
	}
	if rd := h.Renderer(); rd != nil {
		ShowPanic(rd, cfg, v, stack)
	}
}

// panicLineHeight is the baseline pitch of the default font.
const panicLineHeight = 8

// ShowPanic writes a full panel frame describing v, bypassing the ticker.
func ShowPanic(r hal.Renderer, cfg ssd1306.Config, v any, stack []byte) {
	buf, err := framebuffer.New(cfg.Width, cfg.Pages)
	if err != nil {
		return
	}
	lines := []string{"PANIC", fmt.Sprint(v)}
	for _, line := range strings.Split(string(stack), "\n") {
		// Frame lines are indented with a tab; keep function names only.
		if line != "" && !strings.HasPrefix(line, "\t") {
			lines = append(lines, line)
		}
	}

	y := panicLineHeight - 1
	for _, line := range lines {
		for line != "" && y < buf.Height() {
			chunk, rest := fitWidth(line, buf.Width())
			draw.Text(buf, nil, geom.Pt(0, y), chunk)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}

	// Reset the display state the panel may have been left in.
	r.Command(ssd1306.SetEntireOn(false))
	r.Command(ssd1306.SetInvert(false))
	r.Command(ssd1306.SetDisplay(true))
	for p := 0; p < buf.Pages(); p++ {
		region := geom.R(0, p, buf.Width(), 1)
		cmd, ok := ssd1306.AppendAddressWindow(nil, cfg.AddressingMode, region)
		if !ok {
			continue
		}
		if r.Command(cmd) != len(cmd) {
			return
		}
		r.Data(buf.Span(region))
	}
}

// fitWidth splits s after the longest prefix that fits in width pixels,
// always taking at least one rune.
func fitWidth(s string, width int) (prefix, rest string) {
	if draw.TextWidth(nil, s) <= width {
		return s, ""
	}
	cut := 0
	for i := range s {
		if i == 0 {
			continue
		}
		if draw.TextWidth(nil, s[:i]) > width {
			break
		}
		cut = i
	}
	if cut == 0 {
		_, cut = utf8.DecodeRuneInString(s)
	}
	return s[:cut], s[cut:]
}
