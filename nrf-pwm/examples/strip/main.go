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

// The PWM's DMA reads straight out of this buffer, so it gets static storage.
var ledBuf [numLEDs * 24]uint16

func main() {
	// Data pin P0.13 on the Makerdiary nRF52840 connect kit.
	ws, err := pwmlib.NewWs2812(pwm.PWM0, machine.Pin(13), ledBuf[:])
	if err != nil {
		panic(err.Error())
	}

	// Red, green, blue, white, yellow, cyan, magenta and a dim pink.
	colors := []color.RGBA{
		{R: 255},
		{G: 255},
		{B: 255},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 255},
		{G: 255, B: 255},
		{R: 255, B: 255},
		{R: 10, B: 5},
	}
	pwmlib.Brightness(colors, colors, 64)

	if err := ws.WriteColors(colors); err != nil {
		println("write failed:", err.Error())
	}
	println("strip written")

	for {
		time.Sleep(time.Second)
	}
}
