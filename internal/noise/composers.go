package noise

import "math"

// Fractal is a closure-like struct holding one simplex generator per
// octave plus the composition parameters, matching the design note's
// "small struct holding the octave generators plus parameters, with a
// call method" in place of the distilled spec's per-octave closures.
type Fractal struct {
	octaves     []octaveGen
	offset      float64
	scale       float64
	spread      float64
	persistence float64
	lacunarity  float64
}

type octaveGen struct {
	gen        interface{ Eval2(x, y float64) float64 }
	persist    float64
	freqFactor float64
}

// NewFractal builds a fractal (fBm) composer: at octave i the sample is
// taken at (x/spread * lacunarity^i, z/spread * lacunarity^i), weighted by
// persistence^i, and the whole sum is scaled and offset. One simplex
// generator is allocated per octave, consuming `octaves` seeds from f.
func NewFractal(f *Factory, offset, scale, spread float64, octaves int, persistence, lacunarity float64) *Fractal {
	fr := &Fractal{offset: offset, scale: scale, spread: spread, persistence: persistence, lacunarity: lacunarity}
	for i := 0; i < octaves; i++ {
		fr.octaves = append(fr.octaves, octaveGen{
			gen:        f.newSimplex(),
			persist:    math.Pow(persistence, float64(i)),
			freqFactor: math.Pow(lacunarity, float64(i)),
		})
	}
	return fr
}

// Eval samples the composer at world-space (x, z).
func (fr *Fractal) Eval(x, z float64) float64 {
	sum := 0.0
	for _, o := range fr.octaves {
		sum += o.gen.Eval2(x/fr.spread*o.freqFactor, z/fr.spread*o.freqFactor) * o.persist
	}
	return fr.scale*sum + fr.offset
}

// Ridge is the fixed-4-octave ridge composer from §4.2, used for mountain
// silhouettes: each octave inverts and folds the simplex sample so ridges
// read as sharp crests instead of smooth hills.
type Ridge struct {
	octaves     [4]octaveGen
	persistence float64
}

// NewRidge builds a ridge composer. Octave i samples at scale s (doubling
// per octave, starting from the given scale) and contributes
// (1 - |noise(x*s, z*s)|) * persistence^i. Always exactly 4 octaves,
// consuming 4 seeds from f.
func NewRidge(f *Factory, octaves int, persistence, scale float64) *Ridge {
	_ = octaves // fixed at 4 per §4.2; parameter kept for call-site symmetry with Fractal.
	r := &Ridge{persistence: persistence}
	s := scale
	for i := 0; i < 4; i++ {
		r.octaves[i] = octaveGen{gen: f.newSimplex(), persist: math.Pow(persistence, float64(i)), freqFactor: s}
		s *= 2
	}
	return r
}

// Eval samples the ridge composer at world-space (x, z).
func (r *Ridge) Eval(x, z float64) float64 {
	sum := 0.0
	for _, o := range r.octaves {
		n := o.gen.Eval2(x*o.freqFactor, z*o.freqFactor)
		sum += (1 - math.Abs(n)) * o.persist
	}
	return sum
}
