/*package cell describes simulation domains with zero to three periodic
directions. A Cell holds the lattice vectors of the domain, its reciprocal
lattice, and a handful of derived lengths, and uses them to convert between
Cartesian and fractional coordinates, to wrap displacements into their
minimal image, and to find the grid points of a periodic grid which lie
within some cutoff of a center. The last of these is what neighbor lists are
built from.

A Cell always stores three lattice vectors. The first NVec() are the ones the
user gave and the rest are unit vectors orthogonal to them and to each other.
The extra vectors only exist so that the reciprocal lattice can always be
computed as an ordinary 3x3 inverse. Nothing ever translates along them.

Cells are immutable after New returns, so they can be shared between
goroutines without locking.
*/
package cell

import (
	"math"

	"github.com/phil-mansfield/celllists/lib/vec3"
)

// Cell is a lattice with 0, 1, 2, or 3 periodic directions embedded in 3D
// space.
type Cell struct {
	nvec   int
	rvecs  vec3.Mat
	gvecs  vec3.Mat
	volume float64

	rlengths, glengths   [3]float64
	rspacings, gspacings [3]float64
}

// New creates a Cell from nvec lattice vectors stored contiguously in rvecs,
// i.e. rvecs[3*i + j] is component j of vector i. Only the first 3*nvec
// values of rvecs are read.
//
// New fails with an InvalidDimensionality error if nvec is not in [0, 3] or
// rvecs is too short and with a SingularLattice error if the vectors are
// linearly dependent.
func New(rvecs []float64, nvec int) (*Cell, error) {
	if nvec < 0 || nvec > 3 {
		return nil, errorf(InvalidDimensionality,
			"The number of cell vectors must be 0, 1, 2 or 3, not %d.", nvec)
	}
	if len(rvecs) < 3*nvec {
		return nil, errorf(InvalidDimensionality,
			"%d cell vectors need %d components, but only %d were given.",
			nvec, 3*nvec, len(rvecs))
	}

	c := &Cell{nvec: nvec}
	for i := 0; i < nvec; i++ {
		copy(c.rvecs[i][:], rvecs[3*i:3*i+3])
	}

	c.volume = volume(&c.rvecs, nvec)
	if c.volume == 0 && nvec > 0 {
		return nil, errorf(SingularLattice,
			"The %d cell vectors %g are degenerate.", nvec, c.rvecs[:nvec])
	}

	switch nvec {
	case 0:
		c.rvecs = vec3.Identity()
	case 1:
		completeFromOneVector(&c.rvecs)
	case 2:
		completeFromTwoVectors(&c.rvecs)
	}

	c.gvecs, _ = vec3.Dual(&c.rvecs)

	for i := 0; i < 3; i++ {
		c.rlengths[i] = vec3.Norm(c.rvecs[i])
		c.glengths[i] = vec3.Norm(c.gvecs[i])
		c.rspacings[i] = 1 / c.glengths[i]
		c.gspacings[i] = 1 / c.rlengths[i]
	}

	return c, nil
}

// NewFromVecs creates a Cell whose lattice vectors are vecs. nvec is
// len(vecs). See New.
func NewFromVecs(vecs [][3]float64) (*Cell, error) {
	flat := make([]float64, 3*len(vecs))
	for i := range vecs {
		copy(flat[3*i:], vecs[i][:])
	}
	return New(flat, len(vecs))
}

// volume returns the length, area, or volume spanned by the first nvec rows
// of r.
func volume(r *vec3.Mat, nvec int) float64 {
	switch nvec {
	case 1:
		return vec3.Norm(r[0])
	case 2:
		// Gram determinant. Rounding can push it slightly negative for
		// nearly parallel vectors.
		d := vec3.Dot(r[0], r[1])
		gram := vec3.NormSq(r[0])*vec3.NormSq(r[1]) - d*d
		if gram > 0 {
			return math.Sqrt(gram)
		}
		return 0
	case 3:
		return math.Abs(vec3.Det(r))
	}
	return 0
}

// completeFromOneVector fills rows 1 and 2 of r with unit vectors which are
// orthogonal to row 0 and to each other. The resulting triad is
// right-handed.
func completeFromOneVector(r *vec3.Mat) {
	// Start from the coordinate axis least aligned with row 0. Ties go to
	// the later axis.
	a := r[0]
	small := 0
	if math.Abs(a[1]) < math.Abs(a[0]) {
		small = 1
		if math.Abs(a[2]) <= math.Abs(a[1]) {
			small = 2
		}
	} else if math.Abs(a[2]) < math.Abs(a[0]) {
		small = 2
	}

	var axis vec3.Vec
	axis[small] = 1

	r[1] = vec3.Cross(axis, r[0])
	r[1] = vec3.Scale(r[1], 1/vec3.Norm(r[1]))

	completeFromTwoVectors(r)
}

// completeFromTwoVectors sets row 2 of r to the unit vector orthogonal to
// rows 0 and 1 which makes the triad right-handed.
func completeFromTwoVectors(r *vec3.Mat) {
	r[2] = vec3.Cross(r[0], r[1])
	r[2] = vec3.Scale(r[2], 1/vec3.Norm(r[2]))
}

// checkIndex returns an IndexOutOfRange error if i is not in [0, 3).
func checkIndex(name string, i int) error {
	if i < 0 || i >= 3 {
		return errorf(IndexOutOfRange, "%s must be 0, 1 or 2, not %d.", name, i)
	}
	return nil
}

// NVec returns the number of periodic directions.
func (c *Cell) NVec() int { return c.nvec }

// Volume returns the length (nvec = 1), area (nvec = 2) or volume (nvec = 3)
// of the cell. It is 0 when nvec = 0.
func (c *Cell) Volume() float64 { return c.volume }

// RVec returns component icomp of lattice vector ivec. Indices past NVec()
// refer to the generated orthonormal vectors.
func (c *Cell) RVec(ivec, icomp int) (float64, error) {
	if err := checkIndex("ivec", ivec); err != nil {
		return 0, err
	}
	if err := checkIndex("icomp", icomp); err != nil {
		return 0, err
	}
	return c.rvecs[ivec][icomp], nil
}

// GVec returns component icomp of reciprocal vector ivec.
func (c *Cell) GVec(ivec, icomp int) (float64, error) {
	if err := checkIndex("ivec", ivec); err != nil {
		return 0, err
	}
	if err := checkIndex("icomp", icomp); err != nil {
		return 0, err
	}
	return c.gvecs[ivec][icomp], nil
}

// RLength returns the length of lattice vector ivec.
func (c *Cell) RLength(ivec int) (float64, error) {
	if err := checkIndex("ivec", ivec); err != nil {
		return 0, err
	}
	return c.rlengths[ivec], nil
}

// GLength returns the length of reciprocal vector ivec.
func (c *Cell) GLength(ivec int) (float64, error) {
	if err := checkIndex("ivec", ivec); err != nil {
		return 0, err
	}
	return c.glengths[ivec], nil
}

// RSpacing returns the distance between neighboring lattice planes spanned
// by the two lattice vectors other than ivec.
func (c *Cell) RSpacing(ivec int) (float64, error) {
	if err := checkIndex("ivec", ivec); err != nil {
		return 0, err
	}
	return c.rspacings[ivec], nil
}

// GSpacing returns the spacing between reciprocal lattice planes along
// ivec, 1 / RLength(ivec).
func (c *Cell) GSpacing(ivec int) (float64, error) {
	if err := checkIndex("ivec", ivec); err != nil {
		return 0, err
	}
	return c.gspacings[ivec], nil
}

// RVecs returns all three lattice vectors, including generated ones.
func (c *Cell) RVecs() [3][3]float64 { return c.rvecs.Array() }

// GVecs returns all three reciprocal vectors.
func (c *Cell) GVecs() [3][3]float64 { return c.gvecs.Array() }
