//go:build nrf52840 || nrf52833

package main

import (
	"image/color"
	"machine"
	"time"

	pwm "github.com/tmpfs/ws2812-nrf/nrf-pwm"
	"github.com/tmpfs/ws2812-nrf/nrf-pwm/pwmlib"
)

const numLEDs = 8

var ledBuf [numLEDs * 24]uint16

func main() {
	ws, err := pwmlib.NewWs2812(pwm.PWM0, machine.Pin(14), ledBuf[:])
	if err != nil {
		panic(err.Error())
	}

	var colors [numLEDs]color.RGBA
	hueOffset := uint8(0)
	for {
		for i := range colors {
			hue := hueOffset + uint8(i)*32
			// Keep brightness reasonable.
			colors[i] = pwmlib.HSV(hue, 255, 50)
		}
		pwmlib.Brightness(colors[:], colors[:], 64)

		if err := ws.WriteColorsAsync(colors[:]); err != nil {
			println("write failed:", err.Error())
		}
		hueOffset += 4
		time.Sleep(25 * time.Millisecond)
	}
}
