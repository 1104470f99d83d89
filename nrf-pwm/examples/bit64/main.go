//go:build nrf52840 || nrf52833

package main

import (
	"image/color"
	"machine"
	"time"

	pwm "github.com/tmpfs/ws2812-nrf/nrf-pwm"
	"github.com/tmpfs/ws2812-nrf/nrf-pwm/pwmlib"
)

// An 8x8 WS2812 matrix.
const numLEDs = 64

var ledBuf [numLEDs * 24]uint16

func main() {
	ws, err := pwmlib.NewWs2812(pwm.PWM0, machine.Pin(13), ledBuf[:])
	if err != nil {
		panic(err.Error())
	}

	var colors [numLEDs]color.RGBA
	for {
		for i := range colors {
			colors[i] = color.RGBA{B: 255}
		}
		pwmlib.Brightness(colors[:], colors[:], 20)

		if err := ws.WriteColorsAsync(colors[:]); err != nil {
			println("write failed:", err.Error())
		}
		time.Sleep(5 * time.Second)
	}
}
