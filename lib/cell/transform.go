package cell

/* transform.go contains coordinate transformations and minimal-image
wrapping. These are called from simulation inner loops, so none of them
allocate or return errors. */

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/celllists/lib/vec3"
)

// ToFrac converts Cartesian coordinates to fractional coordinates. All three
// components are computed. Components past NVec() are coordinates along the
// generated axes.
func (c *Cell) ToFrac(cart [3]float64) [3]float64 {
	return vec3.MatVec(&c.gvecs, cart)
}

// ToCart converts fractional coordinates to Cartesian coordinates. It is the
// inverse of ToFrac.
func (c *Cell) ToCart(frac [3]float64) [3]float64 {
	return vec3.TMatVec(&c.rvecs, frac)
}

// GLincomb returns the linear combination of the reciprocal vectors weighted
// by coeffs.
func (c *Cell) GLincomb(coeffs [3]float64) [3]float64 {
	return vec3.TMatVec(&c.gvecs, coeffs)
}

// DotRVecs returns the dot products of v with each lattice vector. It undoes
// GLincomb.
func (c *Cell) DotRVecs(v [3]float64) [3]float64 {
	return vec3.MatVec(&c.rvecs, v)
}

// AddRVec adds sum_i coeffs[i]*rvec[i] to delta in place for i < NVec().
// coeffs must have at least NVec() elements. Generated axes are never
// touched, even if coeffs is longer.
func (c *Cell) AddRVec(delta *[3]float64, coeffs []int) {
	if len(coeffs) < c.nvec {
		panic(fmt.Sprintf("Internal error: AddRVec needs %d coefficients, "+
			"but got %d.", c.nvec, len(coeffs)))
	}

	d := (*vec3.Vec)(delta)
	for i := 0; i < c.nvec; i++ {
		vec3.AddScaled(d, c.rvecs[i], float64(coeffs[i]))
	}
}

// Wrap replaces delta with its periodic image whose fractional coordinate
// along each periodic axis lies in (-0.5, 0.5]. Axes are reduced one at a
// time in index order and each uses the already-reduced delta, so for
// skewed cells the result depends on that order.
//
// Half-way cases always go up: a fractional coordinate of -0.5 becomes +0.5.
// This is why math.Ceil is used instead of math.Round.
func (c *Cell) Wrap(delta *[3]float64) {
	d := (*vec3.Vec)(delta)
	for i := 0; i < c.nvec; i++ {
		x := math.Ceil(vec3.Dot(c.gvecs[i], *d) - 0.5)
		vec3.AddScaled(d, c.rvecs[i], -x)
	}
}

// IsCuboid returns true if every lattice vector points along its own
// coordinate axis, i.e. all off-diagonal components of the first NVec()
// vectors are exactly zero. A Cell with no vectors is a cuboid.
func (c *Cell) IsCuboid() bool {
	for i := 0; i < c.nvec; i++ {
		for j := 0; j < 3; j++ {
			if i != j && c.rvecs[i][j] != 0 {
				return false
			}
		}
	}
	return true
}

// IsCubic returns true if the Cell is a cuboid and all its lattice vectors
// have exactly the same diagonal component.
func (c *Cell) IsCubic() bool {
	if !c.IsCuboid() {
		return false
	}
	for i := 1; i < c.nvec; i++ {
		if c.rvecs[i][i] != c.rvecs[0][0] {
			return false
		}
	}
	return true
}
