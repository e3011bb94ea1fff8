package ssd1306

import (
	"image"
	"sync"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	ramColumns = 128
	ramPages   = 8
)

// State is the controller's register file as last programmed.
type State struct {
	On              bool
	Inverted        bool
	EntireOn        bool
	Contrast        uint8
	Mode            AddressingMode
	SegmentRemap    bool
	COMScanReversed bool
	StartLine       uint8
	Offset          uint8
	Multiplex       uint8 // mux ratio minus one, as sent
	ChargePump      bool
	COMPins         COMPins
	Clock           uint8
	Precharge       uint8
	VCOMH           uint8

	ColumnStart, ColumnEnd uint8
	PageStart, PageEnd     uint8
	Column, Page           uint8
}

// Emulator is a software SSD1306. It decodes the command stream, keeps the
// 128x8-page GDDRAM, and advances the RAM pointer the way the chip does in
// each addressing mode. Host frontends display its Snapshot, tests use it
// as the reference device.
type Emulator struct {
	mu sync.Mutex

	width int
	pages int

	ram []byte
	st  State

	// Page mode column start, set by 0x00/0x10.
	pageCol uint8

	pending []byte

	short   int
	trace   bool
	history [][]byte

	generation   uint64
	commandBytes uint64
	dataBytes    uint64
}

// NewEmulator returns a controller in its reset state whose visible area
// is width x pages*8 pixels.
func NewEmulator(width, pages int) *Emulator {
	e := &Emulator{
		width: min(max(width, 1), ramColumns),
		pages: min(max(pages, 1), ramPages),
		ram:   make([]byte, ramColumns*ramPages),
		short: -1,
	}
	e.st = State{
		Contrast:  ResetContrast,
		Mode:      Page,
		Multiplex: 63,
		COMPins:   COMAlternative,
		ColumnEnd: ramColumns - 1,
		PageEnd:   ramPages - 1,
	}
	return e
}

// Trace records every Command call for later inspection with History.
func (e *Emulator) Trace(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.trace = on
	if !on {
		e.history = nil
	}
}

// History returns the traced Command payloads in call order.
func (e *Emulator) History() [][]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([][]byte, len(e.history))
	copy(out, e.history)
	return out
}

// InjectShortWrite makes the next Command or Data call accept at most n
// bytes.
func (e *Emulator) InjectShortWrite(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.short = max(n, 0)
}

func (e *Emulator) accept(b []byte) []byte {
	if e.short >= 0 {
		n := min(e.short, len(b))
		e.short = -1
		return b[:n]
	}
	return b
}

// Command feeds command bytes to the decoder. Multi-byte commands may be
// split across calls.
func (e *Emulator) Command(b []byte) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	b = e.accept(b)
	if e.trace {
		e.history = append(e.history, append([]byte(nil), b...))
	}
	for _, c := range b {
		e.pending = append(e.pending, c)
		if len(e.pending) < commandLen(e.pending[0]) {
			continue
		}
		e.exec(e.pending)
		e.pending = e.pending[:0]
	}
	e.commandBytes += uint64(len(b))
	e.generation++
	return len(b)
}

// Data writes GDDRAM bytes at the pointer.
func (e *Emulator) Data(b []byte) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	b = e.accept(b)
	for _, v := range b {
		e.ram[int(e.st.Page)*ramColumns+int(e.st.Column)] = v
		e.advance()
	}
	e.dataBytes += uint64(len(b))
	e.generation++
	return len(b)
}

func commandLen(op byte) int {
	switch op {
	case cmdMemoryMode, cmdContrast, cmdChargePump, cmdMultiplex, cmdDisplayOffset,
		cmdClockDiv, cmdPrecharge, cmdCOMPins, cmdVCOMH:
		return 2
	case cmdColumnAddr, cmdPageAddr, 0xA3:
		return 3
	case 0x29, 0x2A:
		return 6
	case 0x26, 0x27:
		return 7
	}
	return 1
}

func (e *Emulator) exec(c []byte) {
	op := c[0]
	switch {
	case op <= 0x0F:
		e.pageCol = e.pageCol&0xF0 | op&0x0F
		e.st.Column = e.pageCol
	case op >= 0x10 && op <= 0x1F:
		e.pageCol = e.pageCol&0x0F | (op&0x07)<<4
		e.st.Column = e.pageCol
	case op >= cmdStartLine && op <= cmdStartLine|0x3F:
		e.st.StartLine = op & 0x3F
	case op >= cmdPageStart && op <= cmdPageStart|0x07:
		e.st.Page = op & 0x07
	}

	switch op {
	case cmdMemoryMode:
		if m := AddressingMode(c[1] & 0x03); m <= Page {
			e.st.Mode = m
		}
	case cmdColumnAddr:
		e.st.ColumnStart = c[1] & 0x7F
		e.st.ColumnEnd = c[2] & 0x7F
		e.st.Column = e.st.ColumnStart
	case cmdPageAddr:
		e.st.PageStart = c[1] & 0x07
		e.st.PageEnd = c[2] & 0x07
		e.st.Page = e.st.PageStart
	case cmdContrast:
		e.st.Contrast = c[1]
	case cmdChargePump:
		e.st.ChargePump = c[1] == chargePumpEnabled
	case cmdSegRemap:
		e.st.SegmentRemap = false
	case cmdSegRemap | 0x01:
		e.st.SegmentRemap = true
	case cmdEntireResume:
		e.st.EntireOn = false
	case cmdEntireOn:
		e.st.EntireOn = true
	case cmdNormal:
		e.st.Inverted = false
	case cmdInvert:
		e.st.Inverted = true
	case cmdMultiplex:
		e.st.Multiplex = c[1] & 0x3F
	case cmdDisplayOff:
		e.st.On = false
	case cmdDisplayOn:
		e.st.On = true
	case cmdCOMScanInc:
		e.st.COMScanReversed = false
	case cmdCOMScanDec:
		e.st.COMScanReversed = true
	case cmdDisplayOffset:
		e.st.Offset = c[1] & 0x3F
	case cmdClockDiv:
		e.st.Clock = c[1]
	case cmdPrecharge:
		e.st.Precharge = c[1]
	case cmdCOMPins:
		e.st.COMPins = COMPins(c[1])
	case cmdVCOMH:
		e.st.VCOMH = c[1]
	}
}

func (e *Emulator) advance() {
	st := &e.st
	switch st.Mode {
	case Horizontal:
		if st.Column >= st.ColumnEnd {
			st.Column = st.ColumnStart
			if st.Page >= st.PageEnd {
				st.Page = st.PageStart
			} else {
				st.Page++
			}
		} else {
			st.Column++
		}
	case Vertical:
		if st.Page >= st.PageEnd {
			st.Page = st.PageStart
			if st.Column >= st.ColumnEnd {
				st.Column = st.ColumnStart
			} else {
				st.Column++
			}
		} else {
			st.Page++
		}
	default:
		if st.Column >= ramColumns-1 {
			st.Column = e.pageCol
		} else {
			st.Column++
		}
	}
}

// State returns the register file.
func (e *Emulator) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st
}

// Generation changes whenever a Command or Data call is accepted.
func (e *Emulator) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// Bytes returns the totals accepted on the command and data channels.
func (e *Emulator) Bytes() (command, data uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.commandBytes, e.dataBytes
}

// RAM copies the visible part of GDDRAM in the framebuffer's page-major
// layout (width bytes per page).
func (e *Emulator) RAM() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]byte, e.width*e.pages)
	for p := 0; p < e.pages; p++ {
		copy(out[p*e.width:(p+1)*e.width], e.ram[p*ramColumns:p*ramColumns+e.width])
	}
	return out
}

// Size returns the visible area in pixels.
func (e *Emulator) Size() (width, height int) {
	return e.width, e.pages * PageSize
}

// Snapshot renders what the panel shows: GDDRAM mapped through the start
// line, segment remap and COM scan direction, then display off, entire-on
// and inversion.
func (e *Emulator) Snapshot() *image1bit.VerticalLSB {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := e.pages * PageSize
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, e.width, h))
	if !e.st.On {
		return img
	}
	for y := 0; y < h; y++ {
		row := y
		if e.st.COMScanReversed {
			row = h - 1 - row
		}
		row = (row + int(e.st.StartLine)) % (ramPages * PageSize)
		for x := 0; x < e.width; x++ {
			col := x
			if e.st.SegmentRemap {
				col = ramColumns - 1 - x
			}
			on := e.ram[(row/PageSize)*ramColumns+col]&(1<<uint(row%PageSize)) != 0
			if e.st.EntireOn {
				on = true
			}
			if e.st.Inverted {
				on = !on
			}
			if on {
				img.SetBit(x, y, image1bit.On)
			}
		}
	}
	return img
}
