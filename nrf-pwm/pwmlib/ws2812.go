//go:build nrf52840 || nrf52833

package pwmlib

import (
	"errors"
	"image/color"
	"machine"
	"time"

	pwm "github.com/tmpfs/ws2812-nrf/nrf-pwm"
)

var errBufferSize = errors.New("pwmlib: buffer length must be a nonzero multiple of 24")

// Ws2812 drives a chain of WS2812-family LEDs (aka NeoPixel) from a PWM
// sequencer and a single GPIO. The duty sequence for a whole frame is
// encoded into a caller-provided buffer and played out by EasyDMA, so no
// CPU timing loops are involved.
type Ws2812 struct {
	// pwm holds the peripheral between writes. While a frame is in
	// flight it is moved into the SingleSequencer and this slot is nil.
	pwm *pwm.SequencePwm
	buf []uint16
}

// NewWs2812 claims p and sets it up for WS2812 output on pin. buf holds
// the duty samples for one frame and must be 24 samples per LED; give it
// static (package-level) storage since the PWM's DMA reads from it. The
// buffer and peripheral stay bound to the driver for its whole lifetime.
func NewWs2812(p *pwm.PWM, pin machine.Pin, buf []uint16) (*Ws2812, error) {
	if len(buf) == 0 || len(buf)%ledSamples != 0 {
		return nil, errBufferSize
	}
	cfg := pwm.Config{
		CounterMode:  pwm.CounterModeUp,
		MaxDuty:      periodTicks,
		Prescaler:    pwm.PrescalerDiv1,
		SequenceLoad: pwm.SequenceLoadCommon,
		// High drive for the low level keeps the falling edges sharp
		// on long strip wiring.
		Drive: pwm.DriveH0S1,
	}
	spwm, err := pwm.NewSequencePwm1Ch(p, pin, cfg)
	if err != nil {
		return nil, err
	}
	return &Ws2812{pwm: spwm, buf: buf}, nil
}

// Len returns the number of LEDs addressed by the frame buffer.
func (ws *Ws2812) Len() int { return len(ws.buf) / ledSamples }

// WriteColors encodes colors into the frame buffer and transmits one
// frame, busy-waiting until the frame and reset gap have run out. The
// processor is blocked for the whole wait, so only call this off the
// scheduler's hot path; prefer WriteColorsAsync when other goroutines
// share the core.
//
// Supplying fewer colors than Len leaves the trailing LEDs at the codes
// of the previous frame.
func (ws *Ws2812) WriteColors(colors []color.RGBA) error {
	return ws.write(colors, spinMicros)
}

// WriteColorsAsync is WriteColors with a suspending wait: the calling
// goroutine sleeps for the frame time, yielding the processor to other
// goroutines, and resumes once the frame and reset gap have run out.
func (ws *Ws2812) WriteColorsAsync(colors []color.RGBA) error {
	return ws.write(colors, sleepMicros)
}

func (ws *Ws2812) write(colors []color.RGBA, wait func(micros uint32)) error {
	spwm := ws.pwm
	if spwm == nil {
		panic("pwmlib: Ws2812 write while frame in flight")
	}

	// Move the peripheral out of the driver for the duration of the
	// transmission. No second write can start until it is back.
	ws.pwm = nil
	err := writeFrame(ws.buf, colors, func() error {
		seq := pwm.NewSingleSequencer(spwm, ws.buf, pwm.SequenceConfig{
			Refresh:  0,
			EndDelay: resetTicks,
		})
		return seq.Start(1)
	}, wait)
	ws.pwm = spwm
	return err
}

// spinMicros blocks the processor without yielding.
func spinMicros(micros uint32) {
	end := time.Now().Add(time.Duration(micros) * time.Microsecond)
	for time.Now().Before(end) {
	}
}

// sleepMicros suspends the calling goroutine.
func sleepMicros(micros uint32) {
	time.Sleep(time.Duration(micros) * time.Microsecond)
}
