//go:build nrf52840 || nrf52833

package pwm

import (
	"device/nrf"
	"machine"
)

// nRF52 PWM peripheral handles.
var (
	PWM0 = &PWM{hw: nrf.PWM0}
	PWM1 = &PWM{hw: nrf.PWM1}
	PWM2 = &PWM{hw: nrf.PWM2}
	PWM3 = &PWM{hw: nrf.PWM3}
)

const badPin = "pwm: invalid pin"

// PWM represents one of the four PWM peripherals in the nRF52.
type PWM struct {
	// hw points to the PWM hardware registers.
	hw *nrf.PWM_Type
	// claimed is set once a SequencePwm owns the peripheral.
	claimed bool
}

// IsClaimed returns true if the peripheral is claimed by other code and
// should not be used.
func (p *PWM) IsClaimed() bool { return p.claimed }

// TryClaim attempts to claim the peripheral for use by the caller and
// returns true if successful, or false if already claimed.
func (p *PWM) TryClaim() bool {
	if p.claimed {
		return false
	}
	p.claimed = true
	return true
}

// Unclaim releases the peripheral for use by other code.
func (p *PWM) Unclaim() { p.claimed = false }

// SequencePwm is a PWM peripheral configured for DMA-fed sequence playback
// on a single output pin.
type SequencePwm struct {
	hw  *nrf.PWM_Type
	pin machine.Pin
}

// NewSequencePwm1Ch claims pwm and configures it for sequence playback on
// pin. The other three output channels are disconnected. A non-nil error
// means the peripheral was left untouched.
func NewSequencePwm1Ch(p *PWM, pin machine.Pin, cfg Config) (*SequencePwm, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if !p.TryClaim() {
		return nil, errClaimed
	}

	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	setPinDrive(pin, cfg.Drive)

	hw := p.hw
	hw.ENABLE.Set(0)
	hw.PSEL.OUT[0].Set(uint32(pin))
	for i := 1; i < len(hw.PSEL.OUT); i++ {
		hw.PSEL.OUT[i].Set(nrf.PWM_PSEL_OUT_CONNECT_Disconnected << nrf.PWM_PSEL_OUT_CONNECT_Pos)
	}
	hw.MODE.Set(uint32(cfg.CounterMode) << nrf.PWM_MODE_UPDOWN_Pos)
	hw.COUNTERTOP.Set(uint32(cfg.MaxDuty))
	hw.PRESCALER.Set(uint32(cfg.Prescaler))
	hw.DECODER.Set(uint32(cfg.SequenceLoad)<<nrf.PWM_DECODER_LOAD_Pos |
		nrf.PWM_DECODER_MODE_RefreshCount<<nrf.PWM_DECODER_MODE_Pos)
	hw.LOOP.Set(0)
	hw.ENABLE.Set(nrf.PWM_ENABLE_ENABLE_Enabled)

	return &SequencePwm{hw: hw, pin: pin}, nil
}

// Disable stops the peripheral and disconnects the output pin, leaving it
// driven low by the GPIO.
func (s *SequencePwm) Disable() {
	hw := s.hw
	hw.EVENTS_STOPPED.Set(0)
	hw.TASKS_STOP.Set(1)
	for hw.EVENTS_STOPPED.Get() == 0 {
	}
	hw.ENABLE.Set(0)
	hw.PSEL.OUT[0].Set(nrf.PWM_PSEL_OUT_CONNECT_Disconnected << nrf.PWM_PSEL_OUT_CONNECT_Pos)
}

// setPinDrive rewrites the DRIVE field of the pin's PIN_CNF register. The
// machine package offers no drive-strength control so this pokes the GPIO
// port directly.
func setPinDrive(pin machine.Pin, drive Drive) {
	port, idx := nrf.P0, uint32(pin)
	if idx >= 32 {
		port, idx = nrf.P1, idx-32
	}
	if int(idx) >= len(port.PIN_CNF) {
		panic(badPin)
	}
	cnf := port.PIN_CNF[idx].Get()
	cnf &^= nrf.GPIO_PIN_CNF_DRIVE_Msk
	cnf |= uint32(drive) << nrf.GPIO_PIN_CNF_DRIVE_Pos
	port.PIN_CNF[idx].Set(cnf)
}
