package ssd1306

// Opcodes. Values from the SSD1306 datasheet, section 9.
const (
	cmdLowerColumn     = 0x00
	cmdUpperColumn     = 0x10
	cmdMemoryMode      = 0x20
	cmdColumnAddr      = 0x21
	cmdPageAddr        = 0x22
	cmdStartLine       = 0x40
	cmdContrast        = 0x81
	cmdChargePump      = 0x8D
	cmdSegRemap        = 0xA0
	cmdEntireResume    = 0xA4
	cmdEntireOn        = 0xA5
	cmdNormal          = 0xA6
	cmdInvert          = 0xA7
	cmdMultiplex       = 0xA8
	cmdDisplayOff      = 0xAE
	cmdDisplayOn       = 0xAF
	cmdPageStart       = 0xB0
	cmdCOMScanInc      = 0xC0
	cmdCOMScanDec      = 0xC8
	cmdDisplayOffset   = 0xD3
	cmdClockDiv        = 0xD5
	cmdPrecharge       = 0xD9
	cmdCOMPins         = 0xDA
	cmdVCOMH           = 0xDB
	cmdNop             = 0xE3
	chargePumpEnabled  = 0x14
	chargePumpDisabled = 0x10
)

// I2C control bytes that prefix every transfer.
const (
	ControlCommand = 0x00
	ControlData    = 0x40
)

func pick(cond bool, t, f byte) byte {
	if cond {
		return t
	}
	return f
}

func SetDisplay(on bool) []byte { return []byte{pick(on, cmdDisplayOn, cmdDisplayOff)} }
func SetInvert(on bool) []byte { return []byte{pick(on, cmdInvert, cmdNormal)} }
func SetEntireOn(on bool) []byte { return []byte{pick(on, cmdEntireOn, cmdEntireResume)} }
func SetContrast(v uint8) []byte { return []byte{cmdContrast, v} }
func SetSegmentRemap(flip bool) []byte {
	return []byte{pick(flip, cmdSegRemap|0x01, cmdSegRemap)}
}
func SetCOMScan(flip bool) []byte { return []byte{pick(flip, cmdCOMScanDec, cmdCOMScanInc)} }
func SetMultiplex(n uint8) []byte { return []byte{cmdMultiplex, (n - 1) & 0x3F} }
func SetDisplayOffset(v uint8) []byte {
	return []byte{cmdDisplayOffset, v & 0x3F}
}

// SetClock packs the divide ratio into the low nibble and the oscillator
// frequency into the high nibble.
func SetClock(ratio, freq uint8) []byte {
	return []byte{cmdClockDiv, (freq&0x0F)<<4 | ratio&0x0F}
}

func SetPrecharge(phase1, phase2 uint8) []byte {
	return []byte{cmdPrecharge, (phase2&0x0F)<<4 | phase1&0x0F}
}

func SetVCOMH(v uint8) []byte { return []byte{cmdVCOMH, v} }
func SetCOMPins(c COMPins) []byte { return []byte{cmdCOMPins, byte(c)} }
func SetChargePump(on bool) []byte { return []byte{cmdChargePump, pick(on, chargePumpEnabled, chargePumpDisabled)} }
func SetAddressing(m AddressingMode) []byte {
	return []byte{cmdMemoryMode, byte(m) & 0x03}
}
func SetStartLine(l uint8) []byte { return []byte{cmdStartLine | l&0x3F} }
func Nop() []byte { return []byte{cmdNop} }

// SetColumnRange and SetPageRange program the window used by horizontal
// and vertical addressing.
func SetColumnRange(start, end uint8) []byte { return []byte{cmdColumnAddr, start & 0x7F, end & 0x7F} }
func SetPageRange(start, end uint8) []byte { return []byte{cmdPageAddr, start & 0x07, end & 0x07} }

// SetPageStart and SetColumnStart position the pointer in page addressing
// mode.
func SetPageStart(p uint8) []byte { return []byte{cmdPageStart | p&0x07} }
func SetColumnStart(c uint8) []byte {
	return []byte{cmdLowerColumn | c&0x0F, cmdUpperColumn | (c>>4)&0x0F}
}
