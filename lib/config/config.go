/*package config reads the configuration files used by the celllists command
line tool. Config files are INI-style files read with gcfg. See ExampleConfig
for every variable which can be set.
*/
package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/celllists/lib/catio"
	"github.com/phil-mansfield/celllists/lib/cell"
	"github.com/phil-mansfield/celllists/lib/format"
)

// ExampleConfig is an example config file which sets every variable.
const ExampleConfig = `[Run]
# Print a line of output for each step of the run.
Verbose = false
# Number of threads used by the 'select' mode. -1 uses every core.
Threads = -1

[Cell]
# Lattice vectors, one per line. There can be 0, 1, 2, or 3 of them, and the
# number of vectors is the number of periodic directions.
Vector = 2 0 0
# Vector = 0 1 0
# Vector = 0 0 4

[Grid]
# The number of grid cells along each lattice vector. Defaults to 1.
Shape = 10
# Whether each lattice vector is periodic. Defaults to true.
Periodic = true
# Cartesian position of grid point (0, 0, 0). Defaults to 0 0 0.
Origin = 0 0 0

[Select]
# Cutoff radius used by the 'select' mode.
Cutoff = 5.0

# Centers, one per line. These are added to the centers read from Points.
Center = 2.5 3.4 -0.6

# Optional whitespace-separated text file whose first three columns are the
# x, y, and z coordinates of more centers.
# Points = path/to/points.txt

# Optional sequence format picking rows out of Points, e.g. '0..100 - 63'.
# All rows are used if Rows isn't set.
# Rows = 0..100

# Optional file which selected grid indices are written to.
# Output = path/to/selection.idx`

// Config holds every variable which can be set in a config file.
type Config struct {
	Run struct {
		Verbose bool
		Threads int
	}
	Cell struct {
		Vector []string
	}
	Grid struct {
		Shape, Periodic, Origin string
	}
	Select struct {
		Cutoff float64
		Center []string
		Points string
		Rows   string
		Output string
	}
}

// ReadFile reads a config file.
func ReadFile(fname string) (*Config, error) {
	c := &Config{}
	if err := gcfg.ReadFileInto(c, fname); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadString reads the text of a config file.
func ReadString(text string) (*Config, error) {
	c := &Config{}
	if err := gcfg.ReadStringInto(c, text); err != nil {
		return nil, err
	}
	return c, nil
}

// Override sets variables from command line arguments of the form
// "-Section.Name value". Multi-valued variables, like Select.Center, are
// appended to.
func (c *Config) Override(args []string) error {
	if len(args)%2 != 0 {
		return fmt.Errorf("Command line overrides must come in "+
			"'-Section.Name value' pairs, but there are %d arguments.",
			len(args))
	}

	for i := 0; i < len(args); i += 2 {
		name := strings.TrimLeft(args[i], "-")
		tok := strings.Split(name, ".")
		if !strings.HasPrefix(args[i], "-") || len(tok) != 2 ||
			tok[0] == "" || tok[1] == "" {
			return fmt.Errorf("The command line argument '%s' should "+
				"look like '-Section.Name'.", args[i])
		}

		text := fmt.Sprintf("[%s]\n%s = %s\n", tok[0], tok[1], args[i+1])
		if err := gcfg.ReadStringInto(c, text); err != nil {
			return fmt.Errorf("Could not apply the command line argument "+
				"'%s %s': %s", args[i], args[i+1], err.Error())
		}
	}

	return nil
}

// Validate checks that every variable has a sensible value and returns the
// first problem it finds.
func (c *Config) Validate() error {
	nvec := c.NVec()
	if nvec > 3 {
		return fmt.Errorf("There are %d Cell.Vector lines, but there can "+
			"only be 0, 1, 2, or 3.", nvec)
	}
	if _, err := c.rvecs(); err != nil {
		return err
	}
	if _, _, _, err := c.ParseGrid(); err != nil {
		return err
	}

	if c.Select.Cutoff < 0 {
		return fmt.Errorf("Select.Cutoff is %g, but it can't be negative.",
			c.Select.Cutoff)
	}
	for i := range c.Select.Center {
		if _, err := parseFloats(c.Select.Center[i], 3); err != nil {
			return fmt.Errorf("Select.Center number %d, '%s', is invalid: %s",
				i+1, c.Select.Center[i], err.Error())
		}
	}
	if c.Select.Rows != "" {
		if c.Select.Points == "" {
			return fmt.Errorf("Select.Rows is set, but Select.Points isn't.")
		}
		if _, err := format.ExpandSequenceFormat(c.Select.Rows); err != nil {
			return fmt.Errorf("Select.Rows, '%s', is invalid: %s",
				c.Select.Rows, err.Error())
		}
	}

	return nil
}

// NVec returns the number of lattice vectors.
func (c *Config) NVec() int { return len(c.Cell.Vector) }

// rvecs returns the flattened lattice vectors.
func (c *Config) rvecs() ([]float64, error) {
	rvecs := []float64{}
	for i, vec := range c.Cell.Vector {
		x, err := parseFloats(vec, 3)
		if err != nil {
			return nil, fmt.Errorf("Cell.Vector number %d, '%s', is "+
				"invalid: %s", i+1, vec, err.Error())
		}
		rvecs = append(rvecs, x...)
	}
	return rvecs, nil
}

// NewCell creates the Cell described by the config.
func (c *Config) NewCell() (*cell.Cell, error) {
	rvecs, err := c.rvecs()
	if err != nil {
		return nil, err
	}
	return cell.New(rvecs, c.NVec())
}

// ParseGrid returns the grid shape, periodicity flags, and origin. Missing
// shapes default to 1 and missing periodicity flags default to true.
func (c *Config) ParseGrid() (
	shape []int, pbc []bool, origin [3]float64, err error,
) {
	nvec := c.NVec()

	shape = make([]int, nvec)
	if strings.TrimSpace(c.Grid.Shape) == "" {
		for i := range shape {
			shape[i] = 1
		}
	} else {
		shape, err = parseInts(c.Grid.Shape, nvec)
		if err != nil {
			return nil, nil, origin, fmt.Errorf("Grid.Shape, '%s', is "+
				"invalid: %s", c.Grid.Shape, err.Error())
		}
		for i := range shape {
			if shape[i] <= 0 {
				return nil, nil, origin, fmt.Errorf("Grid.Shape, '%s', has "+
					"a non-positive value.", c.Grid.Shape)
			}
		}
	}

	pbc = make([]bool, nvec)
	if strings.TrimSpace(c.Grid.Periodic) == "" {
		for i := range pbc {
			pbc[i] = true
		}
	} else {
		pbc, err = parseBools(c.Grid.Periodic, nvec)
		if err != nil {
			return nil, nil, origin, fmt.Errorf("Grid.Periodic, '%s', is "+
				"invalid: %s", c.Grid.Periodic, err.Error())
		}
	}

	if strings.TrimSpace(c.Grid.Origin) != "" {
		x, err := parseFloats(c.Grid.Origin, 3)
		if err != nil {
			return nil, nil, origin, fmt.Errorf("Grid.Origin, '%s', is "+
				"invalid: %s", c.Grid.Origin, err.Error())
		}
		copy(origin[:], x)
	}

	return shape, pbc, origin, nil
}

// Centers returns every center in the config: the Select.Center values
// followed by the selected rows of Select.Points.
func (c *Config) Centers() ([][3]float64, error) {
	centers := [][3]float64{}
	for i := range c.Select.Center {
		x, err := parseFloats(c.Select.Center[i], 3)
		if err != nil {
			return nil, fmt.Errorf("Select.Center number %d, '%s', is "+
				"invalid: %s", i+1, c.Select.Center[i], err.Error())
		}
		centers = append(centers, [3]float64{x[0], x[1], x[2]})
	}

	if c.Select.Points == "" {
		return centers, nil
	}

	rd, err := catio.TextFile(c.Select.Points)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	cols, err := rd.ReadFloat64s([]int{0, 1, 2})
	if err != nil {
		return nil, fmt.Errorf("Could not read Select.Points file %s: %s",
			c.Select.Points, err.Error())
	}

	rows, err := format.Rows(c.Select.Rows, len(cols[0]))
	if err != nil {
		return nil, fmt.Errorf("Select.Rows, '%s', is invalid: %s",
			c.Select.Rows, err.Error())
	}
	for _, i := range rows {
		centers = append(centers, [3]float64{cols[0][i], cols[1][i], cols[2][i]})
	}

	return centers, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	tok := strings.Fields(s)
	if len(tok) != n {
		return nil, fmt.Errorf("expected %d values, got %d.", n, len(tok))
	}
	out := make([]float64, n)
	for i := range tok {
		x, err := strconv.ParseFloat(tok[i], 64)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a number.", tok[i])
		}
		out[i] = x
	}
	return out, nil
}

func parseInts(s string, n int) ([]int, error) {
	tok := strings.Fields(s)
	if len(tok) != n {
		return nil, fmt.Errorf("expected %d values, got %d.", n, len(tok))
	}
	out := make([]int, n)
	for i := range tok {
		x, err := strconv.Atoi(tok[i])
		if err != nil {
			return nil, fmt.Errorf("'%s' is not an integer.", tok[i])
		}
		out[i] = x
	}
	return out, nil
}

func parseBools(s string, n int) ([]bool, error) {
	tok := strings.Fields(s)
	if len(tok) != n {
		return nil, fmt.Errorf("expected %d values, got %d.", n, len(tok))
	}
	out := make([]bool, n)
	for i := range tok {
		x, err := strconv.ParseBool(tok[i])
		if err != nil {
			return nil, fmt.Errorf("'%s' is not true or false.", tok[i])
		}
		out[i] = x
	}
	return out, nil
}
