package main

import (
	"fmt"

	"github.com/phil-mansfield/celllists/lib/cell"
	"github.com/phil-mansfield/celllists/lib/thread"
)

// selection holds the grid points selected around one center.
type selection struct {
	begin, end []int
	n          int
	indices    []int
}

// selectCenter runs SetRangesRcut and then SelectInside twice, once to count
// the accepted tuples and once to fill them.
func selectCenter(
	c *cell.Cell, origin, center [3]float64, rcut float64,
	shape []int, pbc []bool,
) (*selection, error) {
	delta := [3]float64{
		origin[0] - center[0],
		origin[1] - center[1],
		origin[2] - center[2],
	}
	begin, end, err := c.SetRangesRcut(delta, rcut)
	if err != nil {
		return nil, err
	}

	g := &cell.Grid{Begin: begin, End: end, Shape: shape, PBC: pbc}
	n, err := c.SelectInside(origin, center, rcut, g, nil)
	if err != nil {
		return nil, err
	}
	indices := make([]int, n*c.NVec())
	if m, err := c.SelectInside(origin, center, rcut, g, indices); err != nil {
		return nil, fmt.Errorf("Internal error: filling the selection "+
			"stopped at %d of %d counted points: %s", m, n, err.Error())
	}

	return &selection{begin: begin, end: end, n: n, indices: indices}, nil
}

// selectAll runs selectCenter on every center across the given number of
// threads. If any center fails, the index of the first failing center is
// returned along with its error.
func selectAll(
	c *cell.Cell, origin [3]float64, centers [][3]float64, rcut float64,
	shape []int, pbc []bool, threads int,
) ([]*selection, int, error) {
	sels := make([]*selection, len(centers))
	errs := make([]error, len(centers))
	thread.Range(len(centers), threads, func(i int) {
		sels[i], errs[i] = selectCenter(c, origin, centers[i], rcut, shape, pbc)
	})

	for i := range errs {
		if errs[i] != nil {
			return nil, i, errs[i]
		}
	}
	return sels, -1, nil
}

// periods returns the periods to store in an index file: the grid shape
// along periodic axes and 0 along the rest.
func periods(shape []int, pbc []bool) []int {
	out := make([]int, len(shape))
	for k := range shape {
		if pbc[k] {
			out[k] = shape[k]
		}
	}
	return out
}
