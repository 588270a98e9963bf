package noise

import "testing"

func TestFractalDeterministicForFixedSeed(t *testing.T) {
	f1 := NewFactoryFromSeed(42)
	f2 := NewFactoryFromSeed(42)

	fr1 := NewFractal(f1, 0, 1, 64, 4, 0.5, 2.0)
	fr2 := NewFractal(f2, 0, 1, 64, 4, 0.5, 2.0)

	for _, p := range [][2]float64{{0, 0}, {13.5, -7}, {1000, 1000}} {
		a := fr1.Eval(p[0], p[1])
		b := fr2.Eval(p[0], p[1])
		if a != b {
			t.Errorf("Eval(%v) diverged: %v vs %v", p, a, b)
		}
	}
}

func TestRidgeBounded(t *testing.T) {
	f := NewFactoryFromSeed(7)
	r := NewRidge(f, 4, 0.5, 0.01)
	for x := 0.0; x < 500; x += 37 {
		v := r.Eval(x, x*1.3)
		// Each octave term lies in [0, persist], so the 4-term sum is
		// bounded by sum of persistence^i for i in 0..3.
		if v < 0 || v > 1+0.5+0.25+0.125+1e-9 {
			t.Errorf("ridge value out of expected range: %v", v)
		}
	}
}

func TestFractalCounterAdvancesPerOctave(t *testing.T) {
	f := NewFactoryFromSeed(0)
	NewFractal(f, 0, 1, 1, 3, 0.5, 2.0)
	if f.counter != 3 {
		t.Errorf("expected counter to advance by octave count, got %d", f.counter)
	}
	NewRidge(f, 4, 0.5, 1)
	if f.counter != 7 {
		t.Errorf("expected counter to advance by 4 more for ridge, got %d", f.counter)
	}
}
