package entities

const (
	JETPACK_THRUST_DURATION = 5.0
	JETPACK_RECOVERY_DELAY  = 0.1
	JETPACK_RECOVERY_RATE   = 4.0
)

// JetpackStamina drains while the jetpack thrusts and refills once it has
// been idle for the recovery delay.
type JetpackStamina struct {
	recoveryDelay *Timer
	thrustTime    float64
	jetpacking    bool
}

func NewJetpackStamina() *JetpackStamina {
	return &JetpackStamina{recoveryDelay: NewTimer(JETPACK_RECOVERY_DELAY)}
}

func (s *JetpackStamina) HasStamina() bool {
	return s.thrustTime < JETPACK_THRUST_DURATION
}

// ImpulseRatio is 0 with a full tank and 1 when it is empty.
func (s *JetpackStamina) ImpulseRatio() float64 {
	return s.thrustTime / JETPACK_THRUST_DURATION
}

func (s *JetpackStamina) IsJetpacking() bool { return s.jetpacking }

func (s *JetpackStamina) SetJetpacking(jetpacking bool) {
	s.jetpacking = jetpacking
	if jetpacking {
		s.recoveryDelay.Reset()
	}
}

func (s *JetpackStamina) Update(delta float64) {
	if s.jetpacking {
		s.thrustTime = min(JETPACK_THRUST_DURATION, s.thrustTime+delta)
		return
	}
	s.recoveryDelay.Update(delta)
	if s.recoveryDelay.IsFinished() {
		s.thrustTime = max(0, s.thrustTime-JETPACK_RECOVERY_RATE*delta)
	}
}

func (s *JetpackStamina) Reset() {
	s.thrustTime = 0
	s.jetpacking = false
	s.recoveryDelay.Reset()
}
