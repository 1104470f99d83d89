//go:build nrf52840 || nrf52833

package pwm

import (
	"device/nrf"
	"unsafe"
)

// SingleSequencer plays one sample sequence through a SequencePwm exactly
// once. It holds the peripheral and the sample buffer for the duration of
// the playback; the buffer must stay allocated and unmodified until the
// sequence and its end delay have run out, since the PWM's EasyDMA reads
// it directly.
type SingleSequencer struct {
	pwm *SequencePwm
	seq []uint16
	cfg SequenceConfig
}

// NewSingleSequencer binds a sample buffer and playback config to a
// SequencePwm. Each sample is a duty value in ticks; bit 15 inverts the
// output polarity for that sample.
func NewSingleSequencer(spwm *SequencePwm, seq []uint16, cfg SequenceConfig) SingleSequencer {
	return SingleSequencer{pwm: spwm, seq: seq, cfg: cfg}
}

// Start triggers the sequence. times must be 1: the sequence is played
// once, followed by the configured end delay, and the peripheral stops by
// itself. A non-nil error means no output was started.
func (s SingleSequencer) Start(times uint16) error {
	if err := checkSequence(len(s.seq), times); err != nil {
		return err
	}
	hw := s.pwm.hw

	hw.EVENTS_SEQEND[0].Set(0)
	hw.EVENTS_STOPPED.Set(0)
	hw.SEQ[0].PTR.Set(uint32(uintptr(unsafe.Pointer(&s.seq[0]))))
	hw.SEQ[0].CNT.Set(uint32(len(s.seq)))
	hw.SEQ[0].REFRESH.Set(s.cfg.Refresh)
	hw.SEQ[0].ENDDELAY.Set(s.cfg.EndDelay)
	hw.LOOP.Set(0)
	// Stop after the sequence rather than holding the last duty value,
	// so the line idles low through the end delay.
	hw.SHORTS.Set(nrf.PWM_SHORTS_SEQEND0_STOP_Enabled << nrf.PWM_SHORTS_SEQEND0_STOP_Pos)
	hw.TASKS_SEQSTART[0].Set(1)
	return nil
}

// IsDone returns true once the triggered sequence has finished playing.
// Callers normally wait out the deterministic playback time instead of
// polling this.
func (s SingleSequencer) IsDone() bool {
	return s.pwm.hw.EVENTS_SEQEND[0].Get() != 0
}

// Stop aborts playback immediately. The LED chain is left in whatever
// state the partial frame produced.
func (s SingleSequencer) Stop() {
	hw := s.pwm.hw
	hw.EVENTS_STOPPED.Set(0)
	hw.TASKS_STOP.Set(1)
	for hw.EVENTS_STOPPED.Get() == 0 {
	}
}
