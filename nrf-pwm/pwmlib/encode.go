package pwmlib

import "image/color"

// WS2812 protocol timing.
// https://cdn-shop.adafruit.com/datasheets/WS2812B.pdf
const (
	// 0-bit high time in ns.
	t0hNanos = 400
	// 1-bit high time in ns.
	t1hNanos = 800
	// Whole bit frame time in ns.
	frameNanos = 1250
	// Frame reset time in µs, 250µs minimum for some clones plus slop.
	resetMicros = 270
	// PWM ticks per µs with the Div1 prescaler.
	ticksPerMicro = 16
	// PWM samples per LED: 8 bits each of green, red, blue.
	ledSamples = 24
)

// toTicks converts nanoseconds to PWM ticks, rounding half up.
func toTicks(ns uint32) uint32 {
	return (ns*ticksPerMicro + 500) / 1000
}

// Bit 15 of a sample flips the polarity so the pulse starts high.
const polarityMsk = 0x8000

// Duty samples for the two bit values, indexed by bit.
var bitCodes = [2]uint16{
	uint16((t0hNanos*ticksPerMicro + 500) / 1000) | polarityMsk,
	uint16((t1hNanos*ticksPerMicro + 500) / 1000) | polarityMsk,
}

const (
	// COUNTERTOP value for one WS2812 bit frame.
	periodTicks = (frameNanos*ticksPerMicro + 500) / 1000
	// End delay producing the inter-frame reset gap.
	resetTicks = (resetMicros*1000*ticksPerMicro + 500) / 1000
)

// encodeFrame writes 24 duty samples per color into buf, one 24-sample
// chunk per color in input order. The wire order is green, red, blue, each
// channel MSB first. Only the first len(colors) chunks are overwritten;
// any trailing chunks keep their previous samples.
func encodeFrame(buf []uint16, colors []color.RGBA) {
	n := len(buf) / ledSamples
	if len(colors) < n {
		n = len(colors)
	}
	for i := 0; i < n; i++ {
		c := colors[i]
		grb := uint32(c.G)<<16 | uint32(c.R)<<8 | uint32(c.B)
		chunk := buf[i*ledSamples : (i+1)*ledSamples]
		for b := range chunk {
			chunk[b] = bitCodes[(grb>>(ledSamples-1-b))&1]
		}
	}
}

// frameMicros returns a worst-case bound in µs for transmitting a buffer
// of the given sample count, including the reset gap.
func frameMicros(samples int) uint32 {
	active := (uint32(samples)*frameNanos + 999) / 1000
	return active + resetMicros
}

// writeFrame is the write path shared by the blocking and suspending
// variants: encode into buf, trigger the sequence, wait out the playback.
// The buffer keeps the freshly encoded frame even when start rejects the
// trigger, in which case nothing was transmitted and wait is skipped.
func writeFrame(buf []uint16, colors []color.RGBA, start func() error, wait func(micros uint32)) error {
	encodeFrame(buf, colors)
	if err := start(); err != nil {
		return err
	}
	wait(frameMicros(len(buf)))
	return nil
}
