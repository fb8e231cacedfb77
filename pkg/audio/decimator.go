package audio

// Decimator3 is a stateful 3:1 running-average decimator: it accumulates
// three consecutive mono samples and emits their mean. No anti-alias
// filter is applied — simplicity is preferred over fidelity, and the
// downstream ASR backend is expected to tolerate the resulting aliasing
// above ~2.67 kHz.
type Decimator3 struct {
	phase uint8
	acc   float32
}

// NewDecimator3 returns a fresh decimator with its phase reset.
func NewDecimator3() *Decimator3 {
	return &Decimator3{}
}

// Push feeds one source-rate sample into the decimator. It returns the
// decimated sample and true once every three calls, and false otherwise.
func (d *Decimator3) Push(s float32) (float32, bool) {
	d.acc += s
	d.phase++
	if d.phase == 3 {
		out := d.acc / 3.0
		d.phase = 0
		d.acc = 0
		return out, true
	}
	return 0, false
}

// PushAll decimates an entire mono buffer, appending results to out.
func (d *Decimator3) PushAll(mono []float32, out []float32) []float32 {
	for _, s := range mono {
		if v, ok := d.Push(s); ok {
			out = append(out, v)
		}
	}
	return out
}
