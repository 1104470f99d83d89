//go:build nrf52840 || nrf52833

package main

import (
	"image/color"
	"machine"
	"math"
	"time"

	"tinygo.org/x/drivers/bh1750"

	pwm "github.com/tmpfs/ws2812-nrf/nrf-pwm"
	"github.com/tmpfs/ws2812-nrf/nrf-pwm/pwmlib"
)

const numLEDs = 1

var ledBuf [numLEDs * 24]uint16

// luxToByte maps a lux reading onto minOut..maxOut with a logarithmic
// curve, inverted so bright ambient light yields a small value.
func luxToByte(lux, minLux, maxLux float64, minOut, maxOut uint8) uint8 {
	clamped := math.Min(math.Max(lux, minLux), maxLux)

	// +1 on every operand avoids log(0).
	lnMin := math.Log(minLux + 1)
	lnMax := math.Log(maxLux + 1)
	lnVal := math.Log(clamped + 1)

	norm := (lnVal - lnMin) / (lnMax - lnMin)
	inv := 1 - norm

	out := float64(minOut) + inv*float64(maxOut-minOut)
	return uint8(math.Round(math.Min(math.Max(out, 0), 255)))
}

func main() {
	machine.I2C0.Configure(machine.I2CConfig{
		// BH1750 breakout on P1.01/P1.02.
		SDA: machine.Pin(33),
		SCL: machine.Pin(34),
	})
	sensor := bh1750.New(machine.I2C0)
	sensor.Configure()

	ws, err := pwmlib.NewWs2812(pwm.PWM0, machine.Pin(13), ledBuf[:])
	if err != nil {
		panic(err.Error())
	}

	darkCyan := color.RGBA{G: 139, B: 139}
	colors := make([]color.RGBA, numLEDs)

	var smoothed float64
	haveSample := false
	for {
		// Illuminance reports millilux.
		lux := float64(sensor.Illuminance()) / 1000
		if !haveSample {
			smoothed = lux
			haveSample = true
		}

		// Exponential smoothing so the LED does not flicker on noise.
		const alpha = 0.12
		smoothed += alpha * (lux - smoothed)

		level := 255 - luxToByte(smoothed, 5, 2000, 5, 255)
		println("lux:", int(smoothed), "level:", level)

		for i := range colors {
			colors[i] = darkCyan
		}
		pwmlib.Brightness(colors, colors, level)

		if err := ws.WriteColorsAsync(colors); err != nil {
			println("write failed:", err.Error())
		}
		time.Sleep(15 * time.Millisecond)
	}
}
