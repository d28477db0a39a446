/*package eq is a simple package for telling whether two arrays are equal to
one another, either exactly or within some tolerance.*/
package eq

import (
	"math"
)

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Strings returns true if two []string arrays are the same and false
// otherwise.
func Strings(x, y []string) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Bools returns true if two []bool arrays are the same and false otherwise.
func Bools(x, y []bool) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Int64s returns true if two []int64 arrays are the same and false
// otherwise.
func Int64s(x, y []int64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Float64s returns true if two []float64 arrays are the same and false
// otherwise.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Float64Eps returns true if x and y are within eps of one another.
func Float64Eps(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Float64Eps(x[i], y[i], eps) {
			return false
		}
	}
	return true
}

// Vec64Eps returns true if every component of x is within eps of the
// corresponding component of y.
func Vec64Eps(x, y [3]float64, eps float64) bool {
	return Float64sEps(x[:], y[:], eps)
}

// Vec64sEps returns true if two [][3]float64 arrays are within eps of one
// another and false otherwise.
func Vec64sEps(x, y [][3]float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Vec64Eps(x[i], y[i], eps) {
			return false
		}
	}
	return true
}
