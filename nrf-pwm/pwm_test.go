package pwm

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		maxDuty uint16
		err     error
	}{
		{"zero duty", 0, ErrBadMaxDuty},
		{"min duty", 1, nil},
		{"ws2812 period", 20, nil},
		{"countertop max", 0x7fff, nil},
		{"countertop overflow", 0x8000, ErrBadMaxDuty},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.MaxDuty = tc.maxDuty
		if err := cfg.validate(); !errors.Is(err, tc.err) {
			t.Errorf("%s: validate got!=expected: %v != %v", tc.name, err, tc.err)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CounterMode != CounterModeUp {
		t.Errorf("default counter mode got!=expected: %d != %d", cfg.CounterMode, CounterModeUp)
	}
	if cfg.Prescaler != PrescalerDiv1 {
		t.Errorf("default prescaler got!=expected: %d != %d", cfg.Prescaler, PrescalerDiv1)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestCheckSequence(t *testing.T) {
	cases := []struct {
		name    string
		samples int
		times   uint16
		err     error
	}{
		{"empty", 0, 1, ErrSequenceLength},
		{"single sample", 1, 1, nil},
		{"one led frame", 24, 1, nil},
		{"cnt max", 0x7fff, 1, nil},
		{"cnt overflow", 0x8000, 1, ErrSequenceLength},
		{"zero repeats", 24, 0, ErrSequenceTimes},
		{"looped", 24, 2, ErrSequenceTimes},
	}
	for _, tc := range cases {
		if err := checkSequence(tc.samples, tc.times); !errors.Is(err, tc.err) {
			t.Errorf("%s: checkSequence got!=expected: %v != %v", tc.name, err, tc.err)
		}
	}
}
