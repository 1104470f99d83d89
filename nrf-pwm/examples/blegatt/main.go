//go:build nrf52840 || nrf52833

package main

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/bluetooth"

	pwm "github.com/tmpfs/ws2812-nrf/nrf-pwm"
	"github.com/tmpfs/ws2812-nrf/nrf-pwm/pwmlib"
)

const numLEDs = 8

var ledBuf [numLEDs * 24]uint16

// ledMode is the value of the mode characteristic.
type ledMode uint8

const (
	modeOff ledMode = iota
	modeRed
	modeGreen
	modeBlue
)

func (m ledMode) color() color.RGBA {
	switch m {
	case modeRed:
		return color.RGBA{R: 255}
	case modeGreen:
		return color.RGBA{G: 255}
	case modeBlue:
		return color.RGBA{B: 255}
	default:
		return color.RGBA{}
	}
}

var (
	adapter = bluetooth.DefaultAdapter

	// Generic Media Control service carrying the mode characteristic.
	serviceUUID = bluetooth.New16BitUUID(0x1849)

	modeCh = make(chan ledMode, 1)
)

func main() {
	must("enable BLE stack", adapter.Enable())

	modeUUID, err := bluetooth.ParseUUID("408813df-5dd4-1f87-ec11-cdb001100000")
	must("parse mode UUID", err)

	var modeChar bluetooth.Characteristic
	must("add LED service", adapter.AddService(&bluetooth.Service{
		UUID: serviceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &modeChar,
				UUID:   modeUUID,
				Value:  []byte{byte(modeOff)},
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicWritePermission |
					bluetooth.CharacteristicNotifyPermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					if offset != 0 || len(value) != 1 {
						return
					}
					m := ledMode(value[0])
					if m > modeBlue {
						println("invalid LED mode:", value[0])
						return
					}
					// Keep only the latest mode if the LED loop is mid-frame.
					select {
					case modeCh <- m:
					default:
					}
				},
			},
		},
	}))

	adv := adapter.DefaultAdvertisement()
	must("configure advertisement", adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    "ws2812-nrf",
		ServiceUUIDs: []bluetooth.UUID{serviceUUID},
	}))
	must("start advertising", adv.Start())
	println("advertising as ws2812-nrf")

	ws, err := pwmlib.NewWs2812(pwm.PWM0, machine.Pin(13), ledBuf[:])
	must("set up LED strip", err)

	colors := make([]color.RGBA, numLEDs)
	mode := modeOff
	for {
		select {
		case m := <-modeCh:
			mode = m
			println("LED mode:", uint8(mode))
			// Notify subscribers of the applied mode.
			if _, err := modeChar.Write([]byte{byte(mode)}); err != nil {
				println("notify failed:", err.Error())
			}
		default:
		}

		c := mode.color()
		for i := range colors {
			colors[i] = c
		}
		pwmlib.Brightness(colors, colors, 64)

		if err := ws.WriteColorsAsync(colors); err != nil {
			println("write failed:", err.Error())
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func must(action string, err error) {
	if err != nil {
		panic("failed to " + action + ": " + err.Error())
	}
}
