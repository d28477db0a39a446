/*package decomp bins points into the cells of a grid laid over a periodic
Cell and groups them so that all the points in one grid cell sit next to
each other. This is the first step of building a cell list: once points are
binned, cell.SelectInside gives the grid cells near a center and the CellMap
gives the points inside each of those cells.
*/
package decomp

import (
	"fmt"
	"math"
	"sort"

	"github.com/phil-mansfield/celllists/lib/cell"
)

// Point is a labeled point along with the index of the grid cell it is in.
type Point struct {
	Index int
	Cart  [3]float64
	ICell [3]int
}

// Less orders points by grid cell, comparing ICell component by component,
// and then by Index.
func (p *Point) Less(q *Point) bool {
	for k := 0; k < 3; k++ {
		if p.ICell[k] != q.ICell[k] {
			return p.ICell[k] < q.ICell[k]
		}
	}
	return p.Index < q.Index
}

// CellMap maps a grid cell index to the half-open range [begin, end) of
// points in that cell.
type CellMap map[[3]int][2]int

// NewPoints creates one Point for each position. Indices count up from 0.
func NewPoints(cart [][3]float64) []Point {
	points := make([]Point, len(cart))
	for i := range points {
		points[i] = Point{Index: i, Cart: cart[i]}
	}
	return points
}

// Subcell returns the Cell of a single grid cell when c is divided into
// shape[i] pieces along each lattice vector.
func Subcell(c *cell.Cell, shape []int) (*cell.Cell, error) {
	nvec := c.NVec()
	if len(shape) < nvec {
		return nil, &cell.Error{Kind: cell.InvalidGrid, Msg: fmt.Sprintf(
			"A %d-periodic cell needs %d grid shapes, not %d.",
			nvec, nvec, len(shape))}
	}

	rvecs := c.RVecs()
	flat := make([]float64, 3*nvec)
	for i := 0; i < nvec; i++ {
		if shape[i] <= 0 {
			return nil, &cell.Error{Kind: cell.InvalidGrid, Msg: fmt.Sprintf(
				"Grid shape %d along axis %d is not positive.", shape[i], i)}
		}
		for j := 0; j < 3; j++ {
			flat[3*i+j] = rvecs[i][j] / float64(shape[i])
		}
	}

	return cell.New(flat, nvec)
}

// AssignICell sets ICell of every point to the floor of its fractional
// coordinates in subcell. All three axes are binned, so points in
// non-periodic directions are binned with unit spacing.
func AssignICell(subcell *cell.Cell, points []Point) {
	for i := range points {
		frac := subcell.ToFrac(points[i].Cart)
		for k := 0; k < 3; k++ {
			points[i].ICell[k] = int(math.Floor(frac[k]))
		}
	}
}

// AssignICellWrapped is AssignICell, followed by wrapping the periodic
// axes of the first NVec() axes back into the grid with cell.SmartWrap.
// Non-periodic axes keep their raw index, even if it is outside the grid.
func AssignICellWrapped(
	subcell *cell.Cell, points []Point, shape []int, pbc []bool,
) error {
	nvec := subcell.NVec()
	if len(shape) < nvec || len(pbc) < nvec {
		return &cell.Error{Kind: cell.InvalidGrid, Msg: fmt.Sprintf(
			"A %d-periodic cell needs %d grid shapes and periodicity "+
				"flags, but got %d and %d.", nvec, nvec, len(shape), len(pbc))}
	}
	for k := 0; k < nvec; k++ {
		if shape[k] <= 0 {
			return &cell.Error{Kind: cell.InvalidGrid, Msg: fmt.Sprintf(
				"Grid shape %d along axis %d is not positive.", shape[k], k)}
		}
	}

	AssignICell(subcell, points)
	for i := range points {
		for k := 0; k < nvec; k++ {
			if pbc[k] {
				points[i].ICell[k] = cell.SmartWrap(
					points[i].ICell[k], shape[k], true,
				)
			}
		}
	}
	return nil
}

// SortPoints sorts points in place so that the points in each grid cell are
// contiguous.
func SortPoints(points []Point) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Less(&points[j])
	})
}

// CreateCellMap creates a CellMap for points, which must already be grouped
// by grid cell, e.g. by SortPoints. An error is returned if a grid cell shows
// up again after another cell has started.
func CreateCellMap(points []Point) (CellMap, error) {
	m := CellMap{}
	if len(points) == 0 {
		return m, nil
	}

	begin := 0
	for i := 1; i <= len(points); i++ {
		if i < len(points) && points[i].ICell == points[begin].ICell {
			continue
		}

		icell := points[begin].ICell
		if _, ok := m[icell]; ok {
			return nil, fmt.Errorf("The points in grid cell %d are not "+
				"contiguous. Point %d is separated from the earlier points "+
				"in that cell.", icell, points[begin].Index)
		}
		m[icell] = [2]int{begin, i}
		begin = i
	}

	return m, nil
}
