/*package rng contains a small deterministic random number generator and
routines for drawing random cells and points from it. It exists so that tests
can sweep over many lattices and get the same lattices on every run.
*/
package rng

import (
	"math"

	"github.com/phil-mansfield/celllists/lib/cell"
)

var (
	xorshiftMaxUint = float64(math.MaxUint32)
)

// RNG is an xorshift random number generator. It is the same as gotetra's
// xorshiftGenerator. It is not thread safe.
type RNG struct {
	w, x, y, z uint32
}

// NewRNG creates an RNG with the given seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{uint32(seed), 123456789, 362436069, 521288629}
}

// Uniform generates a single random number in the range [0, 1).
func (gen *RNG) Uniform() float64 {
	for {
		t := gen.x ^ (gen.x << 11)
		gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
		gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
		res := float64(math.MaxUint32-gen.w) / xorshiftMaxUint
		if res < 1 {
			return res
		}
	}
}

// UniformRange generates a single random number in the range [low, high).
func (gen *RNG) UniformRange(low, high float64) float64 {
	return low + (high-low)*gen.Uniform()
}

// UniformSequence writes one random number in [low, high) to each element of
// target.
func (gen *RNG) UniformSequence(target []float64, low, high float64) {
	for i := range target {
		target[i] = gen.UniformRange(low, high)
	}
}

// IntRange generates a single random integer in [begin, end).
func (gen *RNG) IntRange(begin, end int) int {
	return begin + int(float64(end-begin)*gen.Uniform())
}

// Vec returns a vector whose components are uniform in [low, high).
func (gen *RNG) Vec(low, high float64) [3]float64 {
	return [3]float64{
		gen.UniformRange(low, high),
		gen.UniformRange(low, high),
		gen.UniformRange(low, high),
	}
}

// minVolumeFrac is the smallest volume, in units of scale^nvec, that
// RandomCell will accept. Anything flatter makes round-off errors large
// enough to get in the way of tight test tolerances.
const minVolumeFrac = 0.1

// RandomCell returns a random Cell with nvec lattice vectors whose
// components are drawn from [-scale, scale). If cuboid is true only the
// diagonal components are nonzero, and they are drawn from [scale/2, scale).
// Singular and nearly singular lattices are thrown away and redrawn.
func RandomCell(gen *RNG, nvec int, scale float64, cuboid bool) *cell.Cell {
	if nvec < 0 || nvec > 3 {
		panic("Internal error: RandomCell needs nvec in [0, 3].")
	}

	rvecs := make([]float64, 3*nvec)
	for {
		if cuboid {
			for i := range rvecs {
				rvecs[i] = 0
			}
			for i := 0; i < nvec; i++ {
				rvecs[4*i] = gen.UniformRange(scale/2, scale)
			}
		} else {
			gen.UniformSequence(rvecs, -scale, scale)
		}

		c, err := cell.New(rvecs, nvec)
		if cell.KindOf(err) == cell.SingularLattice {
			continue
		} else if err != nil {
			panic(err.Error())
		}

		if nvec == 0 || c.Volume() > minVolumeFrac*math.Pow(scale, float64(nvec)) {
			return c
		}
	}
}

// RandomPoint returns a point drawn uniformly from the ball of radius rcut
// around center along with its distance from center.
func RandomPoint(
	gen *RNG, center [3]float64, rcut float64,
) (point [3]float64, dist float64) {
	for {
		d := gen.Vec(-rcut, rcut)
		r2 := d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
		if r2 >= rcut*rcut {
			continue
		}
		for i := range point {
			point[i] = center[i] + d[i]
		}
		return point, math.Sqrt(r2)
	}
}
