//go:build tinygo

package main

import (
	"context"

	"ssdui/app"
	"ssdui/hal"
	"ssdui/ssd1306"
)

func main() {
	h := hal.New()
	defer app.Recover(h, ssd1306.Config{})
	if err := app.Run(context.Background(), h, app.Options{}); err != nil {
		h.Logger().WriteLineString("ssdui: " + err.Error())
	}
	select {}
}
