package ssd1306

import "errors"

var (
	// ErrShortWrite reports that a renderer sent fewer bytes than asked.
	ErrShortWrite = errors.New("ssd1306: short write")
	ErrNoBus      = errors.New("ssd1306: nil bus")
)
