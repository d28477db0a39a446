package main

import (
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/celllists/lib/cell"
	"github.com/phil-mansfield/celllists/lib/compress"
	"github.com/phil-mansfield/celllists/lib/config"
	"github.com/phil-mansfield/celllists/lib/decomp"
	"github.com/phil-mansfield/celllists/lib/error"
	"github.com/phil-mansfield/celllists/lib/thread"
)

const usage = `celllists <mode> <config file> [-Section.Name value ...]

Modes:
  help  - Prints this message and an example config file.
  check - Checks the config file for errors.
  info  - Prints the lattice, its reciprocal lattice, and derived lengths.
  wrap  - Wraps every center into its minimal image.
  select - Finds the grid points within Select.Cutoff of every center.
  bin   - Bins every center into the grid and prints the occupied cells.

Any config variable can be overridden from the command line, e.g.
  celllists select my.cfg -Select.Cutoff 2.5`

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "help" {
		PrintHelp()
		return
	}
	if len(os.Args) < 3 {
		error.External("celllists must be run as:\n%s", usage)
	}

	mode, configFile := os.Args[1], os.Args[2]
	con, err := config.ReadFile(configFile)
	if err != nil {
		error.External("Could not read the config file %s: %s",
			configFile, err.Error())
	}
	if err := con.Override(os.Args[3:]); err != nil {
		error.External("%s", err.Error())
	}
	if err := con.Validate(); err != nil {
		error.External("The config file %s is invalid: %s",
			configFile, err.Error())
	}

	verbose := con.Run.Verbose
	if verbose {
		log.Printf("Running mode '%s' with config file %s.", mode, configFile)
	}

	switch mode {
	case "check":
		Check(con)
	case "info":
		Info(con)
	case "wrap":
		Wrap(con)
	case "select":
		Select(con)
	case "bin":
		Bin(con)
	default:
		error.External(
			"You attempted to run celllists in the mode '%s', but the only "+
				"valid modes are 'help', 'check', 'info', 'wrap', 'select', "+
				"and 'bin'.", mode,
		)
	}

	if verbose {
		log.Printf("Finished mode '%s'.", mode)
	}
}

// PrintHelp runs the "help" mode.
func PrintHelp() {
	fmt.Println(usage)
	fmt.Println()
	fmt.Println("Example config file:")
	fmt.Println()
	fmt.Println(config.ExampleConfig)
}

// mustCell creates the config's Cell, exiting on failure.
func mustCell(con *config.Config) *cell.Cell {
	c, err := con.NewCell()
	if err != nil {
		switch cell.KindOf(err) {
		case cell.SingularLattice, cell.InvalidDimensionality:
			error.External("The Cell.Vector lines can't be used: %s",
				err.Error())
		default:
			error.Internal("Unexpected error while creating the cell: %s",
				err.Error())
		}
	}
	return c
}

// mustCenters reads every center in the config, exiting on failure.
func mustCenters(con *config.Config) [][3]float64 {
	centers, err := con.Centers()
	if err != nil {
		error.External("%s", err.Error())
	}
	if con.Run.Verbose {
		log.Printf("Read %d centers.", len(centers))
	}
	return centers
}

// Check runs the "check" mode, which tests for errors in the configuration.
func Check(con *config.Config) {
	mustCell(con)
	mustCenters(con)
	fmt.Println("No errors detected.")
}

// Info runs the "info" mode, which prints everything known about the
// lattice.
func Info(con *config.Config) {
	c := mustCell(con)

	fmt.Printf("nvec:     %d\n", c.NVec())
	fmt.Printf("volume:   %.8g\n", c.Volume())
	fmt.Printf("cubic:    %v\n", c.IsCubic())
	fmt.Printf("cuboid:   %v\n", c.IsCuboid())

	rvecs, gvecs := c.RVecs(), c.GVecs()
	for i := 0; i < 3; i++ {
		rl, _ := c.RLength(i)
		gl, _ := c.GLength(i)
		rs, _ := c.RSpacing(i)
		gs, _ := c.GSpacing(i)

		kind := "periodic"
		if i >= c.NVec() {
			kind = "generated"
		}
		fmt.Printf("axis %d (%s):\n", i, kind)
		fmt.Printf("  rvec %.8g  length %.8g  spacing %.8g\n",
			rvecs[i], rl, rs)
		fmt.Printf("  gvec %.8g  length %.8g  spacing %.8g\n",
			gvecs[i], gl, gs)
	}

	// The full triad, including generated vectors, is always invertible.
	data := make([]float64, 0, 9)
	for i := range rvecs {
		data = append(data, rvecs[i][:]...)
	}
	m := mat.NewDense(3, 3, data)
	fmt.Printf("det:      %.8g\n", mat.Det(m))
	fmt.Printf("cond:     %.8g\n", mat.Cond(m, 2))
}

// Wrap runs the "wrap" mode, which treats every center as a displacement
// and wraps it into its minimal image.
func Wrap(con *config.Config) {
	c := mustCell(con)
	centers := mustCenters(con)

	fmt.Println("# original (3) | wrapped (3) | fractional wrapped (3)")
	for _, x := range centers {
		delta := x
		c.Wrap(&delta)
		frac := c.ToFrac(delta)
		fmt.Printf("%.8g %.8g %.8g  %.8g %.8g %.8g  %.8g %.8g %.8g\n",
			x[0], x[1], x[2], delta[0], delta[1], delta[2],
			frac[0], frac[1], frac[2])
	}
}

// Select runs the "select" mode, which finds the grid points within the
// cutoff of every center.
func Select(con *config.Config) {
	c := mustCell(con)
	centers := mustCenters(con)
	shape, pbc, origin, err := con.ParseGrid()
	if err != nil {
		error.External("%s", err.Error())
	}
	rcut := con.Select.Cutoff
	nvec := c.NVec()

	threads, err := thread.Set(con.Run.Threads)
	if err != nil {
		error.External("%s", err.Error())
	}
	if con.Run.Verbose {
		log.Printf("Selecting around %d centers with %d threads.",
			len(centers), threads)
	}

	sels, failed, err := selectAll(c, origin, centers, rcut,
		shape, pbc, threads)
	if err != nil {
		error.External("Could not select grid points around center %d: %s",
			failed, err.Error())
	}

	all := []int{}
	for i, sel := range sels {
		fmt.Printf("# center %d: %.8g, ranges [%d, %d), %d grid points\n",
			i, centers[i], sel.begin, sel.end, sel.n)
		for j := 0; j < sel.n; j++ {
			fmt.Println(sel.indices[j*nvec : (j+1)*nvec])
		}

		all = append(all, sel.indices...)
	}

	if con.Select.Output != "" {
		if err := compress.WriteIndexFile(
			con.Select.Output, nvec, periods(shape, pbc), all,
		); err != nil {
			error.External("Could not write %s: %s",
				con.Select.Output, err.Error())
		}
		if con.Run.Verbose {
			log.Printf("Wrote %d index tuples to %s.",
				len(all)/nvec, con.Select.Output)
		}
	}
}

// Bin runs the "bin" mode, which bins every center into the grid and prints
// the occupied grid cells.
func Bin(con *config.Config) {
	c := mustCell(con)
	centers := mustCenters(con)
	shape, pbc, _, err := con.ParseGrid()
	if err != nil {
		error.External("%s", err.Error())
	}

	sub, err := decomp.Subcell(c, shape)
	if err != nil {
		error.External("Could not divide the cell into a grid: %s",
			err.Error())
	}

	points := decomp.NewPoints(centers)
	if err := decomp.AssignICellWrapped(sub, points, shape, pbc); err != nil {
		error.External("%s", err.Error())
	}
	decomp.SortPoints(points)

	m, err := decomp.CreateCellMap(points)
	if err != nil {
		error.Internal("Sorted points could not be mapped: %s", err.Error())
	}

	fmt.Printf("# %d points in %d grid cells\n", len(points), len(m))
	for i := 0; i < len(points); {
		icell := points[i].ICell
		r := m[icell]
		idx := make([]int, 0, r[1]-r[0])
		for j := r[0]; j < r[1]; j++ {
			idx = append(idx, points[j].Index)
		}
		fmt.Printf("%d: %d\n", icell, idx)
		i = r[1]
	}
}
