/*package vec3 contains routines for fixed-size 3-vectors and 3x3 matrices.
Everything here works on values rather than pointers because the types are
small enough that copying them is cheaper than chasing a pointer.

Matrices are stored row-major, so m[i] is the i-th row and m[i][j] is the
j-th component of that row.
*/
package vec3

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Mat is a 3x3 matrix stored as three row vectors.
type Mat [3]Vec

// Identity returns the 3x3 identity matrix.
func Identity() Mat {
	return Mat{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// NormSq returns the squared Euclidean norm of a.
func NormSq(a Vec) float64 {
	return a[0]*a[0] + a[1]*a[1] + a[2]*a[2]
}

// Norm returns the Euclidean norm of a.
func Norm(a Vec) float64 {
	return math.Sqrt(NormSq(a))
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(d0*d0 + d1*d1 + d2*d2)
}

// Cross returns the cross product a x b.
func Cross(a, b Vec) Vec {
	return Vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Triple returns the scalar triple product a . (b x c).
func Triple(a, b, c Vec) float64 {
	return a[0]*(b[1]*c[2]-b[2]*c[1]) +
		a[1]*(b[2]*c[0]-b[0]*c[2]) +
		a[2]*(b[0]*c[1]-b[1]*c[0])
}

// Scale returns s*a.
func Scale(a Vec, s float64) Vec {
	return Vec{s * a[0], s * a[1], s * a[2]}
}

// Add returns a + b.
func Add(a, b Vec) Vec {
	return Vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns the displacement pointing from begin to end, end - begin.
func Sub(end, begin Vec) Vec {
	return Vec{end[0] - begin[0], end[1] - begin[1], end[2] - begin[2]}
}

// AddScaled adds s*term to out in place.
func AddScaled(out *Vec, term Vec, s float64) {
	out[0] += s * term[0]
	out[1] += s * term[1]
	out[2] += s * term[2]
}

// MatVec returns the product m*v.
func MatVec(m *Mat, v Vec) Vec {
	return Vec{Dot(m[0], v), Dot(m[1], v), Dot(m[2], v)}
}

// TMatVec returns the product transpose(m)*v, i.e. the linear combination of
// the rows of m weighted by v.
func TMatVec(m *Mat, v Vec) Vec {
	return Vec{
		m[0][0]*v[0] + m[1][0]*v[1] + m[2][0]*v[2],
		m[0][1]*v[0] + m[1][1]*v[1] + m[2][1]*v[2],
		m[0][2]*v[0] + m[1][2]*v[1] + m[2][2]*v[2],
	}
}

// Det returns the determinant of m.
func Det(m *Mat) float64 {
	return Triple(m[0], m[1], m[2])
}

// Dual returns the dual basis of the rows of m along with the determinant of
// m. Row i of g satisfies g[i] . m[j] = 1 if i == j and 0 otherwise, so g is
// the transpose of the inverse of m. It is computed from cofactors without
// pivoting: if det is zero, g is full of Infs and NaNs and it is up to the
// caller to check det first.
func Dual(m *Mat) (g Mat, det float64) {
	g[0] = Cross(m[1], m[2])
	g[1] = Cross(m[2], m[0])
	g[2] = Cross(m[0], m[1])
	det = Dot(g[0], m[0])

	for i := range g {
		for j := range g[i] {
			g[i][j] /= det
		}
	}
	return g, det
}

// Inverse returns the inverse of m and its determinant. See Dual for the
// caveats.
func Inverse(m *Mat) (inv Mat, det float64) {
	g, det := Dual(m)
	return Transpose(&g), det
}

// Transpose returns the transpose of m.
func Transpose(m *Mat) Mat {
	var t Mat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// Array returns m as a plain nested array.
func (m Mat) Array() [3][3]float64 {
	return [3][3]float64{m[0], m[1], m[2]}
}
