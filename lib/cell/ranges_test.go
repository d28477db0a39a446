package cell_test

import (
	"errors"
	"math"
	"testing"

	"github.com/phil-mansfield/celllists/lib/cell"
	"github.com/phil-mansfield/celllists/lib/eq"
	"github.com/phil-mansfield/celllists/lib/rng"
)

func TestSmartWrap(t *testing.T) {
	tests := []struct {
		i, shape int
		pbc      bool
		out      int
	}{
		{-15, 5, true, 0},
		{-1, 5, true, 4},
		{5, 5, true, 0},
		{4, 5, false, 4},
		{5, 5, false, -1},
		{0, 5, false, 0},
		{-1, 5, false, -1},
		{12, 5, true, 2},
		{-6, 5, true, 4},
		{3, 0, true, -1},
	}

	for i := range tests {
		out := cell.SmartWrap(tests[i].i, tests[i].shape, tests[i].pbc)
		if out != tests[i].out {
			t.Errorf("%d) Expected SmartWrap(%d, %d, %v) = %d, got %d.",
				i, tests[i].i, tests[i].shape, tests[i].pbc, tests[i].out, out)
		}
	}
}

func TestSetRangesRcut(t *testing.T) {
	tests := []struct {
		rvecs      []float64
		nvec       int
		center     [3]float64
		rcut       float64
		begin, end []int
	}{
		// frac = 3.15 and step = 0.5, so begin = ceil(-3.15 - 0.5) = -3 and
		// end = ceil(-3.15 + 0.5) = -2.
		{[]float64{2, 0, 0}, 1, [3]float64{6.3, 0.2, -0.8}, 1.0,
			[]int{-3}, []int{-2}},
		{[]float64{2, 0, 0}, 1, [3]float64{-6.3, 0.2, -0.8}, 1.0,
			[]int{3}, []int{4}},
		{[]float64{2, 0, 0}, 1, [3]float64{-2.5, -3.4, 0.6}, 5.0,
			[]int{-1}, []int{4}},
		{[]float64{2, 0, 0, 0, 1, 0, 0, 0, 4}, 3, [3]float64{1, 0.5, -2}, 1.5,
			[]int{-1, -2, 1}, []int{1, 1, 1}},
		{[]float64{}, 0, [3]float64{1, 2, 3}, 1.0, []int{}, []int{}},
	}

	for i := range tests {
		c := mustCell(t, tests[i].rvecs, tests[i].nvec)
		begin, end, err := c.SetRangesRcut(tests[i].center, tests[i].rcut)
		if err != nil {
			t.Errorf("%d) Got error '%s'.", i, err.Error())
		} else if !eq.Ints(begin, tests[i].begin) ||
			!eq.Ints(end, tests[i].end) {
			t.Errorf("%d) Expected ranges [%d, %d), got [%d, %d).",
				i, tests[i].begin, tests[i].end, begin, end)
		}
	}
}

func TestSetRangesRcutErrors(t *testing.T) {
	c := mustCell(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, 3)
	for _, rcut := range []float64{0, -1, math.NaN()} {
		_, _, err := c.SetRangesRcut([3]float64{}, rcut)
		if !errors.Is(err, cell.ErrNonPositiveCutoff) {
			t.Errorf("Expected NonPositiveCutoff for rcut = %g, got %v.",
				rcut, err)
		}
	}
}

func oneDimGrid(begin, end int, pbc bool) *cell.Grid {
	return &cell.Grid{
		Begin: []int{begin}, End: []int{end},
		Shape: []int{10}, PBC: []bool{pbc},
	}
}

func TestSelectInsideExamples(t *testing.T) {
	c := mustCell(t, []float64{2, 0, 0}, 1)
	tests := []struct {
		center     [3]float64
		begin, end int
		pbc        bool
		indices    []int
	}{
		{[3]float64{2.5, 3.4, -0.6}, -2, 4, true, []int{0, 1, 2, 3}},
		{[3]float64{2.5, 3.4, -0.6}, -1, 4, true, []int{0, 1, 2, 3}},
		{[3]float64{-2.5, 3.4, -0.6}, -6, 0, true, []int{7, 8, 9}},
		{[3]float64{-2.5, 3.4, -0.6}, -6, 0, false, []int{}},
		{[3]float64{-2.5, 3.4, -0.6}, -6, 1, false, []int{0}},
		{[3]float64{20.5, 3.4, -0.6}, 8, 14, true, []int{9, 0, 1, 2}},
	}

	for i := range tests {
		g := oneDimGrid(tests[i].begin, tests[i].end, tests[i].pbc)

		n, err := c.SelectInside([3]float64{}, tests[i].center, 5, g, nil)
		if err != nil {
			t.Errorf("%d) Got error '%s'.", i, err.Error())
			continue
		} else if n != len(tests[i].indices) {
			t.Errorf("%d) Expected count %d, got %d.",
				i, len(tests[i].indices), n)
			continue
		}

		indices := make([]int, n)
		m, err := c.SelectInside([3]float64{}, tests[i].center, 5, g, indices)
		if err != nil {
			t.Errorf("%d) Got error '%s'.", i, err.Error())
		} else if m != n {
			t.Errorf("%d) Count and fill calls gave %d and %d.", i, n, m)
		} else if !eq.Ints(indices, tests[i].indices) {
			t.Errorf("%d) Expected indices %d, got %d.",
				i, tests[i].indices, indices)
		}
	}
}

func TestSelectInsideOrigin(t *testing.T) {
	// Shifting origin and center together changes nothing.
	c := mustCell(t, []float64{2, 0, 0}, 1)
	g := oneDimGrid(-2, 4, true)
	shift := [3]float64{7, -3, 1.5}

	exp, err := c.AppendInside(nil, [3]float64{},
		[3]float64{2.5, 3.4, -0.6}, 5, g)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.AppendInside(nil, shift,
		[3]float64{2.5 + 7, 3.4 - 3, -0.6 + 1.5}, 5, g)
	if err != nil {
		t.Fatal(err)
	}
	if !eq.Ints(exp, out) {
		t.Errorf("Expected shifted selection %d, got %d.", exp, out)
	}
}

func TestSelectInsideErrors(t *testing.T) {
	c0 := mustCell(t, []float64{}, 0)
	_, err := c0.SelectInside([3]float64{}, [3]float64{}, 1,
		&cell.Grid{}, nil)
	if !errors.Is(err, cell.ErrUnsupportedZeroDimension) {
		t.Errorf("Expected UnsupportedZeroDimension for nvec = 0, got %v.",
			err)
	}

	c := mustCell(t, []float64{1, 0, 0, 0, 1, 0}, 2)
	grids := []*cell.Grid{
		nil,
		{Begin: []int{0}, End: []int{1, 1},
			Shape: []int{1, 1}, PBC: []bool{true, true}},
		{Begin: []int{0, 0}, End: []int{1, 1},
			Shape: []int{1, 1}, PBC: []bool{true}},
		{Begin: []int{0, 0}, End: []int{1, 1},
			Shape: []int{1, 0}, PBC: []bool{true, true}},
	}
	for i := range grids {
		_, err := c.SelectInside([3]float64{}, [3]float64{}, 1, grids[i], nil)
		if cell.KindOf(err) != cell.InvalidGrid {
			t.Errorf("%d) Expected InvalidGrid, got %v.", i, err)
		}
	}
}

func TestSelectInsideShortBuffer(t *testing.T) {
	c := mustCell(t, []float64{2, 0, 0}, 1)
	g := oneDimGrid(-2, 4, true)
	center := [3]float64{2.5, 3.4, -0.6}

	indices := make([]int, 2)
	n, err := c.SelectInside([3]float64{}, center, 5, g, indices)
	if !errors.Is(err, cell.ErrInvalidGrid) {
		t.Errorf("Expected InvalidGrid for a short buffer, got %v.", err)
	}
	if n != 2 || !eq.Ints(indices, []int{0, 1}) {
		t.Errorf("Expected the two tuples that fit, [0 1], got %d: %d.",
			n, indices)
	}
}

// widen returns a copy of g whose ranges are extended by pad on each side.
func widen(g *cell.Grid, pad int) *cell.Grid {
	out := &cell.Grid{
		Begin: append([]int{}, g.Begin...), End: append([]int{}, g.End...),
		Shape: g.Shape, PBC: g.PBC,
	}
	for i := range out.Begin {
		out.Begin[i] -= pad
		out.End[i] += pad
	}
	return out
}

func TestSelectInsideCoverage(t *testing.T) {
	gen := rng.NewRNG(20)
	for nvec := 1; nvec <= 3; nvec++ {
		for rep := 0; rep < nRep; rep++ {
			c := rng.RandomCell(gen, nvec, 1, rep%2 == 0)
			origin, center := gen.Vec(-2, 2), gen.Vec(-2, 2)
			rcut := gen.UniformRange(0.1, 1.5)

			delta := [3]float64{
				origin[0] - center[0],
				origin[1] - center[1],
				origin[2] - center[2],
			}
			begin, end, err := c.SetRangesRcut(delta, rcut)
			if err != nil {
				t.Fatal(err)
			}

			g := &cell.Grid{
				Begin: begin, End: end,
				Shape: []int{1000, 1000, 1000}, PBC: []bool{true, true, true},
			}

			n, err := c.SelectInside(origin, center, rcut, g, nil)
			if err != nil {
				t.Fatal(err)
			}
			nWide, err := c.SelectInside(origin, center, rcut, widen(g, 3), nil)
			if err != nil {
				t.Fatal(err)
			}
			if n != nWide {
				t.Errorf("nvec = %d) SetRangesRcut ranges [%d, %d) found %d "+
					"grid points, but wider ranges found %d.",
					nvec, begin, end, n, nWide)
			}

			indices := make([]int, n*nvec)
			m, err := c.SelectInside(origin, center, rcut, g, indices)
			if err != nil {
				t.Fatal(err)
			}
			appended, err := c.AppendInside(nil, origin, center, rcut, g)
			if err != nil {
				t.Fatal(err)
			}
			if m != n || !eq.Ints(indices, appended) {
				t.Errorf("nvec = %d) Count %d, fill %d, and append gave "+
					"different results.", nvec, n, m)
			}
		}
	}
}

func TestSelectInsideDistances(t *testing.T) {
	gen := rng.NewRNG(21)
	for nvec := 1; nvec <= 3; nvec++ {
		for rep := 0; rep < nRep; rep++ {
			c := rng.RandomCell(gen, nvec, 1, false)
			center := gen.Vec(-1, 1)
			rcut := gen.UniformRange(0.1, 1.5)

			// With shape 1000 and small ranges every index stays put, so
			// tuples can be converted straight back to positions.
			begin, end, err := c.SetRangesRcut(
				[3]float64{-center[0], -center[1], -center[2]}, rcut,
			)
			if err != nil {
				t.Fatal(err)
			}
			for i := range begin {
				begin[i] += 500
				end[i] += 500
			}
			var shift [3]float64
			for i := 0; i < nvec; i++ {
				shift[i] = -500
			}
			origin := c.ToCart(shift)

			g := &cell.Grid{
				Begin: begin, End: end,
				Shape: []int{1000, 1000, 1000}, PBC: []bool{false, false, false},
			}
			indices, err := c.AppendInside(nil, origin, center, rcut, g)
			if err != nil {
				t.Fatal(err)
			}

			for k := 0; k < len(indices); k += nvec {
				var frac [3]float64
				for i := 0; i < nvec; i++ {
					frac[i] = float64(indices[k+i] - 500)
				}
				p := c.ToCart(frac)
				d := math.Sqrt((p[0]-center[0])*(p[0]-center[0]) +
					(p[1]-center[1])*(p[1]-center[1]) +
					(p[2]-center[2])*(p[2]-center[2]))
				if d >= rcut+eps {
					t.Errorf("nvec = %d) Selected %d at distance %g > %g.",
						nvec, indices[k:k+nvec], d, rcut)
				}
			}
		}
	}
}

func BenchmarkSelectInside(b *testing.B) {
	gen := rng.NewRNG(0)
	c := rng.RandomCell(gen, 3, 1, false)
	center := gen.Vec(-1, 1)
	neg := [3]float64{-center[0], -center[1], -center[2]}
	begin, end, err := c.SetRangesRcut(neg, 3)
	if err != nil {
		b.Fatal(err)
	}
	g := &cell.Grid{
		Begin: begin, End: end,
		Shape: []int{16, 16, 16}, PBC: []bool{true, true, true},
	}
	n, err := c.SelectInside([3]float64{}, center, 3, g, nil)
	if err != nil {
		b.Fatal(err)
	}
	indices := make([]int, 3*n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SelectInside([3]float64{}, center, 3, g, indices)
	}
}
