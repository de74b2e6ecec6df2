package entities

// Timer counts elapsed seconds up to its duration.
type Timer struct {
	Duration float64

	elapsed      float64
	justFinished bool
}

func NewTimer(duration float64) *Timer {
	return &Timer{Duration: duration}
}

func (t *Timer) Update(delta float64) {
	finished := t.IsFinished()
	t.elapsed += delta
	if t.elapsed > t.Duration {
		t.elapsed = t.Duration
	}
	t.justFinished = !finished && t.IsFinished()
}

func (t *Timer) Reset() {
	t.elapsed = 0
	t.justFinished = false
}

func (t *Timer) SetToEnd() {
	t.elapsed = t.Duration
	t.justFinished = false
}

func (t *Timer) IsFinished() bool     { return t.elapsed >= t.Duration }
func (t *Timer) IsJustFinished() bool { return t.justFinished }

// Ratio is the elapsed fraction of the duration.
func (t *Timer) Ratio() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return t.elapsed / t.Duration
}
