package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/phil-mansfield/celllists/lib/cell"
	"github.com/phil-mansfield/celllists/lib/eq"
)

func TestExampleConfig(t *testing.T) {
	c, err := ReadString(ExampleConfig)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	if c.Run.Verbose || c.Run.Threads != -1 {
		t.Errorf("Expected Verbose = false, Threads = -1, got %v, %d.",
			c.Run.Verbose, c.Run.Threads)
	}
	if c.NVec() != 1 {
		t.Errorf("Expected one lattice vector, got %d.", c.NVec())
	}

	cl, err := c.NewCell()
	if err != nil {
		t.Fatal(err)
	}
	if x, _ := cl.RVec(0, 0); cl.NVec() != 1 || x != 2 {
		t.Errorf("Expected a 1D cell with rvec[0][0] = 2, got nvec = %d, "+
			"rvec[0][0] = %g.", cl.NVec(), x)
	}

	shape, pbc, origin, err := c.ParseGrid()
	if err != nil {
		t.Fatal(err)
	}
	if !eq.Ints(shape, []int{10}) || !eq.Bools(pbc, []bool{true}) ||
		origin != [3]float64{} {
		t.Errorf("Expected shape [10], pbc [true], origin [0 0 0], got "+
			"%d, %v, %g.", shape, pbc, origin)
	}

	centers, err := c.Centers()
	if err != nil {
		t.Fatal(err)
	}
	if !eq.Vec64sEps(centers, [][3]float64{{2.5, 3.4, -0.6}}, 0) {
		t.Errorf("Expected centers [[2.5 3.4 -0.6]], got %g.", centers)
	}
	if c.Select.Cutoff != 5 {
		t.Errorf("Expected Cutoff = 5, got %g.", c.Select.Cutoff)
	}
}

func TestGridDefaults(t *testing.T) {
	c, err := ReadString(`[Cell]
Vector = 1 0 0
Vector = 0 1 0
`)
	if err != nil {
		t.Fatal(err)
	}

	shape, pbc, origin, err := c.ParseGrid()
	if err != nil {
		t.Fatal(err)
	}
	if !eq.Ints(shape, []int{1, 1}) || !eq.Bools(pbc, []bool{true, true}) ||
		origin != [3]float64{} {
		t.Errorf("Expected default grid [1 1], [true true], [0 0 0], got "+
			"%d, %v, %g.", shape, pbc, origin)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		text  string
		valid bool
	}{
		{"", true},
		{"[Cell]\nVector = 1 0 0\n", true},
		{"[Cell]\nVector = 1 0\n", false},
		{"[Cell]\nVector = 1 0 x\n", false},
		{"[Cell]\nVector = 1 0 0\nVector = 0 1 0\nVector = 0 0 1\n" +
			"Vector = 1 1 1\n", false},
		{"[Cell]\nVector = 1 0 0\n[Grid]\nShape = 3 3\n", false},
		{"[Cell]\nVector = 1 0 0\n[Grid]\nShape = 0\n", false},
		{"[Cell]\nVector = 1 0 0\n[Grid]\nPeriodic = maybe\n", false},
		{"[Cell]\nVector = 1 0 0\n[Grid]\nPeriodic = false\n", true},
		{"[Grid]\nOrigin = 1 2\n", false},
		{"[Select]\nCutoff = -1\n", false},
		{"[Select]\nCenter = 1 2 3\nCenter = 4 5\n", false},
		{"[Select]\nRows = 0..10\n", false},
		{"[Select]\nPoints = p.txt\nRows = 10..0\n", false},
		{"[Select]\nPoints = p.txt\nRows = 0..10 - 3\n", true},
	}

	for i := range tests {
		c, err := ReadString(tests[i].text)
		if err != nil {
			t.Errorf("%d) Got error '%s' while reading.", i, err.Error())
			continue
		}

		err = c.Validate()
		if tests[i].valid && err != nil {
			t.Errorf("%d) Expected config to be valid, got error '%s'.",
				i, err.Error())
		} else if !tests[i].valid && err == nil {
			t.Errorf("%d) Expected config to be invalid, but got no error.", i)
		}
	}
}

func TestReadErrors(t *testing.T) {
	texts := []string{
		"[NotASection]\nX = 1\n",
		"[Run]\nNotAVariable = 1\n",
		"[Select]\nCutoff = abc\n",
	}
	for i := range texts {
		if _, err := ReadString(texts[i]); err == nil {
			t.Errorf("%d) Expected '%s' to fail.", i, texts[i])
		}
	}

	if _, err := ReadFile("this/file/does/not/exist.cfg"); err == nil {
		t.Errorf("Expected an error for a missing file.")
	}
}

func TestSingularCell(t *testing.T) {
	c, err := ReadString("[Cell]\nVector = 1 0 0\nVector = 2 0 0\n")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.NewCell(); cell.KindOf(err) != cell.SingularLattice {
		t.Errorf("Expected SingularLattice, got %v.", err)
	}
}

func TestOverride(t *testing.T) {
	c, err := ReadString(ExampleConfig)
	if err != nil {
		t.Fatal(err)
	}

	err = c.Override([]string{
		"-Select.Cutoff", "1.5",
		"-Run.Verbose", "true",
		"-Select.Center", "0 0 1",
		"-Grid.Shape", "4",
	})
	if err != nil {
		t.Fatal(err)
	}

	if c.Select.Cutoff != 1.5 || !c.Run.Verbose || c.Grid.Shape != "4" {
		t.Errorf("Expected Cutoff = 1.5, Verbose = true, Shape = 4, got "+
			"%g, %v, %s.", c.Select.Cutoff, c.Run.Verbose, c.Grid.Shape)
	}
	if !eq.Strings(c.Select.Center, []string{"2.5 3.4 -0.6", "0 0 1"}) {
		t.Errorf("Expected an appended center, got %s.", c.Select.Center)
	}

	bad := [][]string{
		{"-Select.Cutoff"},
		{"Select.Cutoff", "1"},
		{"-Cutoff", "1"},
		{"-Select.Nope", "1"},
		{"-Select.Cutoff", "abc"},
	}
	for i := range bad {
		if err := c.Override(bad[i]); err == nil {
			t.Errorf("%d) Expected Override(%s) to fail.", i, bad[i])
		}
	}
}

func TestCentersFromPoints(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	fname := filepath.Join(dir, "points.txt")
	text := "# x y z\n0 0 0\n1 1 1\n2 2 2\n3 3 3\n"
	if err := ioutil.WriteFile(fname, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := ReadString("[Select]\nCenter = 9 9 9\n")
	if err != nil {
		t.Fatal(err)
	}
	c.Select.Points = fname
	c.Select.Rows = "1..3 - 2"

	centers, err := c.Centers()
	if err != nil {
		t.Fatal(err)
	}
	exp := [][3]float64{{9, 9, 9}, {1, 1, 1}, {3, 3, 3}}
	if !eq.Vec64sEps(centers, exp, 0) {
		t.Errorf("Expected centers %g, got %g.", exp, centers)
	}

	c.Select.Rows = "0..4"
	if _, err := c.Centers(); err == nil {
		t.Errorf("Expected an error for rows past the end of the file.")
	}
}
