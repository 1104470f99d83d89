package pwm

import "errors"

// PWM errors.
var (
	ErrBadMaxDuty     = errors.New("pwm: max duty out of range")
	ErrSequenceLength = errors.New("pwm: sequence length out of range")
	ErrSequenceTimes  = errors.New("pwm: unsupported sequence repeat count")
	errClaimed        = errors.New("pwm: peripheral already claimed")
)

// COUNTERTOP and SEQ[n].CNT are 15-bit registers.
const (
	maxCountertop  = 0x7fff
	maxSequenceLen = 0x7fff
)

// CounterMode selects the direction of the PWM counter.
type CounterMode uint8

const (
	// CounterModeUp counts up to the duty value, resetting to zero at COUNTERTOP.
	CounterModeUp CounterMode = iota
	// CounterModeUpAndDown counts up to COUNTERTOP and back down, centering pulses.
	CounterModeUpAndDown
)

// Prescaler divides the 16MHz PWM base clock.
type Prescaler uint8

const (
	PrescalerDiv1 Prescaler = iota // 16MHz
	PrescalerDiv2
	PrescalerDiv4
	PrescalerDiv8
	PrescalerDiv16
	PrescalerDiv32
	PrescalerDiv64
	PrescalerDiv128 // 125kHz
)

// SequenceLoad selects how the DECODER distributes sequence samples over
// the four output channels.
type SequenceLoad uint8

const (
	// SequenceLoadCommon plays each sample on all enabled channels.
	SequenceLoadCommon SequenceLoad = iota
	// SequenceLoadGrouped plays samples pairwise on channels 0+1 and 2+3.
	SequenceLoadGrouped
	// SequenceLoadIndividual plays one sample per channel.
	SequenceLoadIndividual
	// SequenceLoadWaveform plays three samples per period plus a COUNTERTOP sample.
	SequenceLoadWaveform
)

// Drive selects the GPIO output drive strength, matching the DRIVE field
// of PIN_CNF. The first letter pair applies when driving low, the second
// when driving high.
type Drive uint8

const (
	DriveS0S1 Drive = iota // standard drive both ways
	DriveH0S1              // high drive low, standard high
	DriveS0H1
	DriveH0H1
)

// Config holds the static configuration of a PWM peripheral.
type Config struct {
	// CounterMode sets the counting direction.
	CounterMode CounterMode
	// MaxDuty is the COUNTERTOP value, the tick count of one PWM period.
	// Must be in range 1..32767.
	MaxDuty uint16
	// Prescaler divides the 16MHz base clock.
	Prescaler Prescaler
	// SequenceLoad sets the sample-to-channel decoder mode.
	SequenceLoad SequenceLoad
	// Drive is applied to the output pin's PIN_CNF.
	Drive Drive
}

// DefaultConfig returns the reset configuration: up counter, 16MHz clock,
// common sequence load, 1000-tick period, standard pin drive.
func DefaultConfig() Config {
	return Config{
		CounterMode:  CounterModeUp,
		MaxDuty:      1000,
		Prescaler:    PrescalerDiv1,
		SequenceLoad: SequenceLoadCommon,
		Drive:        DriveS0S1,
	}
}

func (cfg Config) validate() error {
	if cfg.MaxDuty == 0 || cfg.MaxDuty > maxCountertop {
		return ErrBadMaxDuty
	}
	return nil
}

// SequenceConfig configures the playback of one sample sequence.
type SequenceConfig struct {
	// Refresh is the number of extra PWM periods each sample is repeated
	// for. 0 plays every sample for exactly one period.
	Refresh uint32
	// EndDelay is the number of PWM ticks the output idles after the last
	// sample of the sequence.
	EndDelay uint32
}

// checkSequence validates the sample count and repeat count before a
// sequence is handed to the hardware.
func checkSequence(samples int, times uint16) error {
	if times != 1 {
		return ErrSequenceTimes
	}
	if samples == 0 || samples > maxSequenceLen {
		return ErrSequenceLength
	}
	return nil
}
