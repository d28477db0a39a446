package cell

/* ranges.go finds the points of a periodic grid which can be within a cutoff
radius of a center. SetRangesRcut computes a box of candidate grid indices
and SelectInside filters that box down to the indices which actually are
within the cutoff. */

import (
	"math"

	"github.com/phil-mansfield/celllists/lib/vec3"
)

// SetRangesRcut returns half-open ranges [begin[i], end[i]), one for each
// periodic axis, which contain component i of every integer fractional
// coordinate whose lattice point is within rcut of -center. Each axis is
// bounded independently using the distance between lattice planes, so the
// box is tight for cuboid cells and loose for skewed ones, but it never
// misses a point.
//
// It fails with a NonPositiveCutoff error if rcut <= 0. For nvec = 0 the
// returned slices are empty.
func (c *Cell) SetRangesRcut(
	center [3]float64, rcut float64,
) (begin, end []int, err error) {
	if !(rcut > 0) {
		return nil, nil, errorf(NonPositiveCutoff,
			"The cutoff radius must be positive, not %g.", rcut)
	}

	frac := c.ToFrac(center)
	begin, end = make([]int, c.nvec), make([]int, c.nvec)
	for i := 0; i < c.nvec; i++ {
		step := rcut / c.rspacings[i]
		begin[i] = int(math.Ceil(-frac[i] - step))
		end[i] = int(math.Ceil(-frac[i] + step))
	}
	return begin, end, nil
}

// Grid describes a periodic grid of points aligned with a Cell's lattice
// vectors: the ranges of raw indices to search through, the number of grid
// points along each axis, and whether each axis is periodic. Each slice must
// have at least NVec() elements.
type Grid struct {
	Begin, End []int
	Shape      []int
	PBC        []bool
}

// SelectInside loops over every raw index tuple (i0, i1, i2) in the ranges
// of g, places the grid point at ToCart(i) + origin, and keeps the tuple if
// that point is strictly closer than rcut to center. Kept tuples are wrapped
// into the grid with SmartWrap. Tuples which fall off a non-periodic axis are
// skipped.
//
// The first NVec() components of each kept tuple are written to indices and
// the number of kept tuples is returned. If indices is nil, only the count is
// computed, so the usual pattern is to call SelectInside twice: once to size
// the buffer and once to fill it. Both calls give the same result for the
// same arguments. If indices is non-nil but too short, an InvalidGrid error
// is returned along with the number of tuples that fit.
//
// The ranges returned by SetRangesRcut(origin - center, rcut) contain every
// tuple SelectInside can accept.
//
// It fails with an UnsupportedZeroDimension error if NVec() == 0.
func (c *Cell) SelectInside(
	origin, center [3]float64, rcut float64, g *Grid, indices []int,
) (int, error) {
	n := 0
	err := c.selectInside(origin, center, rcut, g, func(j [3]int) bool {
		if indices != nil {
			off := n * c.nvec
			if off+c.nvec > len(indices) {
				return false
			}
			copy(indices[off:off+c.nvec], j[:c.nvec])
		}
		n++
		return true
	})
	return n, err
}

// AppendInside is the same as SelectInside, but appends the kept tuples to
// dst and returns the extended slice.
func (c *Cell) AppendInside(
	dst []int, origin, center [3]float64, rcut float64, g *Grid,
) ([]int, error) {
	err := c.selectInside(origin, center, rcut, g, func(j [3]int) bool {
		dst = append(dst, j[:c.nvec]...)
		return true
	})
	return dst, err
}

// selectInside does the work for SelectInside and AppendInside. keep is
// called on each accepted wrapped tuple. If keep returns false, the search
// stops and an InvalidGrid error is returned.
func (c *Cell) selectInside(
	origin, center [3]float64, rcut float64, g *Grid, keep func([3]int) bool,
) error {
	if c.nvec == 0 {
		return errorf(UnsupportedZeroDimension,
			"The cell must be at least 1D periodic to select grid points.")
	}
	if err := c.checkGrid(g); err != nil {
		return err
	}

	// Generated axes get the single index 0 and never wrap.
	begin, end, shape := [3]int{0, 0, 0}, [3]int{1, 1, 1}, [3]int{1, 1, 1}
	pbc := [3]bool{}
	for i := 0; i < c.nvec; i++ {
		begin[i], end[i] = g.Begin[i], g.End[i]
		shape[i], pbc[i] = g.Shape[i], g.PBC[i]
	}

	// The grid point ToCart(i) + origin is compared to center, so shift
	// once up front.
	shift := vec3.Sub(vec3.Vec(origin), vec3.Vec(center))

	var j [3]int
	for i0 := begin[0]; i0 < end[0]; i0++ {
		if j[0] = SmartWrap(i0, shape[0], pbc[0]); j[0] == -1 {
			continue
		}
		for i1 := begin[1]; i1 < end[1]; i1++ {
			if j[1] = SmartWrap(i1, shape[1], pbc[1]); j[1] == -1 {
				continue
			}
			for i2 := begin[2]; i2 < end[2]; i2++ {
				if j[2] = SmartWrap(i2, shape[2], pbc[2]); j[2] == -1 {
					continue
				}

				frac := vec3.Vec{float64(i0), float64(i1), float64(i2)}
				d := vec3.Add(c.ToCart(frac), shift)
				if vec3.Norm(d) < rcut {
					if !keep(j) {
						return errorf(InvalidGrid,
							"The index buffer is too short.")
					}
				}
			}
		}
	}

	return nil
}

// checkGrid returns an InvalidGrid error if g can't be used with c.
func (c *Cell) checkGrid(g *Grid) error {
	if g == nil {
		return errorf(InvalidGrid, "No grid was given.")
	}
	if len(g.Begin) < c.nvec || len(g.End) < c.nvec ||
		len(g.Shape) < c.nvec || len(g.PBC) < c.nvec {
		return errorf(InvalidGrid, "A %d-periodic cell needs grid ranges, "+
			"shapes and periodicity flags of length %d, but got lengths "+
			"%d, %d, %d, and %d.", c.nvec, c.nvec, len(g.Begin), len(g.End),
			len(g.Shape), len(g.PBC))
	}
	for i := 0; i < c.nvec; i++ {
		if g.Shape[i] <= 0 {
			return errorf(InvalidGrid, "Grid shape %d along axis %d is "+
				"not positive.", g.Shape[i], i)
		}
	}
	return nil
}

// SmartWrap maps a raw grid index i onto a grid with shape points. Indices
// already in [0, shape) are returned unchanged. Otherwise, if pbc is true the
// index is wrapped periodically into [0, shape) and if pbc is false -1 is
// returned to signal that there is no such grid point. A grid with no points
// always gives -1.
func SmartWrap(i, shape int, pbc bool) int {
	if i >= 0 && i < shape {
		return i
	}
	if !pbc || shape <= 0 {
		return -1
	}
	j := i % shape
	if j < 0 {
		j += shape
	}
	return j
}
