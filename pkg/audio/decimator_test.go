package audio

import "testing"

func TestDecimator3_Push(t *testing.T) {
	d := NewDecimator3()

	if _, ok := d.Push(1.0); ok {
		t.Fatal("expected no output after first sample")
	}
	if _, ok := d.Push(2.0); ok {
		t.Fatal("expected no output after second sample")
	}
	out, ok := d.Push(3.0)
	if !ok {
		t.Fatal("expected output after third sample")
	}
	if out != 2.0 {
		t.Errorf("expected mean 2.0, got %v", out)
	}

	// phase resets: a new group of three starts clean.
	if _, ok := d.Push(10.0); ok {
		t.Fatal("expected no output immediately after reset")
	}
}

func TestDecimator3_PushAll(t *testing.T) {
	d := NewDecimator3()
	mono := []float32{1, 1, 1, 2, 2, 2, 3} // 7 samples -> 2 full groups
	out := d.PushAll(mono, nil)
	if len(out) != 2 {
		t.Fatalf("expected 2 decimated samples, got %d", len(out))
	}
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("unexpected decimated output: %v", out)
	}
}
