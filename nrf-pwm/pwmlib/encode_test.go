package pwmlib

import (
	"errors"
	"image/color"
	"testing"

	pwm "github.com/tmpfs/ws2812-nrf/nrf-pwm"
)

// decodeFrame is the inverse of encodeFrame, used to check the wire
// encoding: 24 samples per LED, green/red/blue order, MSB first.
func decodeFrame(t *testing.T, buf []uint16) []color.RGBA {
	t.Helper()
	colors := make([]color.RGBA, len(buf)/ledSamples)
	for i := range colors {
		var grb uint32
		for b, code := range buf[i*ledSamples : (i+1)*ledSamples] {
			switch code {
			case bitCodes[1]:
				grb |= 1 << (ledSamples - 1 - b)
			case bitCodes[0]:
			default:
				t.Fatalf("sample %d is not a bit code: %#04x", i*ledSamples+b, code)
			}
		}
		colors[i] = color.RGBA{
			R: uint8(grb >> 8),
			G: uint8(grb >> 16),
			B: uint8(grb),
		}
	}
	return colors
}

func TestTickDerivation(t *testing.T) {
	cases := []struct {
		ns    uint32
		ticks uint32
	}{
		{t0hNanos, 6},
		{t1hNanos, 13},
		{frameNanos, 20},
		{resetMicros * 1000, 4320},
	}
	for _, tc := range cases {
		if got := toTicks(tc.ns); got != tc.ticks {
			t.Errorf("toTicks(%d) got!=expected: %d != %d", tc.ns, got, tc.ticks)
		}
	}
	if periodTicks != 20 {
		t.Errorf("periodTicks got!=expected: %d != 20", periodTicks)
	}
	if resetTicks != 4320 {
		t.Errorf("resetTicks got!=expected: %d != 4320", resetTicks)
	}
	if bitCodes[0] != 6|polarityMsk {
		t.Errorf("zero code got!=expected: %#04x != %#04x", bitCodes[0], 6|polarityMsk)
	}
	if bitCodes[1] != 13|polarityMsk {
		t.Errorf("one code got!=expected: %#04x != %#04x", bitCodes[1], 13|polarityMsk)
	}
}

func TestEncodeSingleColor(t *testing.T) {
	cases := []struct {
		name  string
		color color.RGBA
		// want holds the expected code per 8-sample channel chunk,
		// in wire order green, red, blue.
		want [3]uint16
	}{
		{"black", color.RGBA{}, [3]uint16{bitCodes[0], bitCodes[0], bitCodes[0]}},
		{"white", color.RGBA{R: 255, G: 255, B: 255}, [3]uint16{bitCodes[1], bitCodes[1], bitCodes[1]}},
		{"pure red", color.RGBA{R: 255}, [3]uint16{bitCodes[0], bitCodes[1], bitCodes[0]}},
		{"pure green", color.RGBA{G: 255}, [3]uint16{bitCodes[1], bitCodes[0], bitCodes[0]}},
		{"pure blue", color.RGBA{B: 255}, [3]uint16{bitCodes[0], bitCodes[0], bitCodes[1]}},
	}
	for _, tc := range cases {
		var buf [ledSamples]uint16
		encodeFrame(buf[:], []color.RGBA{tc.color})
		for i, code := range buf {
			if want := tc.want[i/8]; code != want {
				t.Errorf("%s: sample %d got!=expected: %#04x != %#04x", tc.name, i, code, want)
			}
		}
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	colors := []color.RGBA{
		{R: 0x12, G: 0x34, B: 0x56},
		{R: 0xff, G: 0x00, B: 0x80},
		{R: 0x01, G: 0x02, B: 0x03},
		{R: 0xaa, G: 0x55, B: 0xcc},
		{R: 0x00, G: 0xff, B: 0x00},
	}
	buf := make([]uint16, len(colors)*ledSamples)
	encodeFrame(buf, colors)
	got := decodeFrame(t, buf)
	for i := range colors {
		if got[i] != colors[i] {
			t.Errorf("led %d got!=expected: %v != %v", i, got[i], colors[i])
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	colors := []color.RGBA{{R: 7, G: 77, B: 177}, {R: 200, G: 100, B: 50}}
	a := make([]uint16, len(colors)*ledSamples)
	b := make([]uint16, len(colors)*ledSamples)
	encodeFrame(a, colors)
	encodeFrame(b, colors)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("sample %d differs between identical encodes: %#04x != %#04x", i, a[i], b[i])
		}
	}
}

func TestEncodePartialKeepsTail(t *testing.T) {
	const sentinel = 0xbeef
	buf := make([]uint16, 2*ledSamples)
	for i := range buf {
		buf[i] = sentinel
	}
	encodeFrame(buf, []color.RGBA{{R: 255, G: 255, B: 255}})
	for i, code := range buf[:ledSamples] {
		if code != bitCodes[1] {
			t.Errorf("sample %d got!=expected: %#04x != %#04x", i, code, bitCodes[1])
		}
	}
	for i, code := range buf[ledSamples:] {
		if code != sentinel {
			t.Errorf("tail sample %d overwritten: %#04x", ledSamples+i, code)
		}
	}
}

func TestEncodeIgnoresExcessColors(t *testing.T) {
	var buf [ledSamples]uint16
	encodeFrame(buf[:], []color.RGBA{{B: 255}, {R: 255}})
	got := decodeFrame(t, buf[:])
	if want := (color.RGBA{B: 255}); got[0] != want {
		t.Errorf("led 0 got!=expected: %v != %v", got[0], want)
	}
}

func TestWriteFrame(t *testing.T) {
	colors := []color.RGBA{{R: 255, G: 255, B: 255}}
	buf := make([]uint16, ledSamples)

	var waited uint32
	err := writeFrame(buf, colors, func() error { return nil }, func(micros uint32) {
		waited = micros
	})
	if err != nil {
		t.Fatalf("writeFrame: %v", err)
	}
	if want := frameMicros(ledSamples); waited != want {
		t.Errorf("wait got!=expected: %dµs != %dµs", waited, want)
	}
}

func TestWriteFrameTriggerRejected(t *testing.T) {
	colors := []color.RGBA{{R: 255, G: 255, B: 255}}
	buf := make([]uint16, ledSamples)

	rejected := pwm.ErrSequenceLength
	err := writeFrame(buf, colors, func() error { return rejected }, func(micros uint32) {
		t.Error("wait ran despite rejected trigger")
	})
	if !errors.Is(err, rejected) {
		t.Errorf("error got!=expected: %v != %v", err, rejected)
	}
	// The buffer holds the encoded frame even though nothing was sent.
	for i, code := range buf {
		if code != bitCodes[1] {
			t.Errorf("sample %d got!=expected: %#04x != %#04x", i, code, bitCodes[1])
		}
	}
}

func TestFrameMicros(t *testing.T) {
	// 8 LEDs: 192 bits at 1.25µs plus the 270µs reset gap.
	if got := frameMicros(8 * ledSamples); got != 510 {
		t.Errorf("frameMicros(192) got!=expected: %d != 510", got)
	}
	if got := frameMicros(ledSamples); got != 30+resetMicros {
		t.Errorf("frameMicros(24) got!=expected: %d != %d", got, 30+resetMicros)
	}
	// The bound must never undershoot the exact transmission time.
	for _, leds := range []int{1, 8, 64} {
		samples := leds * ledSamples
		exactNs := uint64(samples) * frameNanos
		if got := uint64(frameMicros(samples)-resetMicros) * 1000; got < exactNs {
			t.Errorf("frameMicros(%d) undershoots active time: %dns < %dns", samples, got, exactNs)
		}
	}
}
