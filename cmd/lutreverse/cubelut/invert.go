package cubelut

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Inversion constants, after Little CMS. The Jacobian is estimated by
// finite differences; deltas reflect at the domain boundary.
const (
	jacobianEpsilon        = 0.001
	inversionMaxIterations = 30
	detTolerance           = 1e-4
)

type vec3 [3]float64

// mat3 is row-major: m[row][col].
type mat3 [3]vec3

// inverse computes b = m^(-1) via the adjugate. Fails on a singular
// matrix.
func (m *mat3) inverse() (mat3, bool) {
	c0 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c1 := -m[1][0]*m[2][2] + m[1][2]*m[2][0]
	c2 := m[1][0]*m[2][1] - m[1][1]*m[2][0]

	det := m[0][0]*c0 + m[0][1]*c1 + m[0][2]*c2
	if math.Abs(det) < detTolerance {
		return mat3{}, false
	}

	var b mat3
	b[0][0] = c0 / det
	b[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det
	b[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det
	b[1][0] = c1 / det
	b[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det
	b[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det
	b[2][0] = c2 / det
	b[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det
	b[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det
	return b, true
}

func (m *mat3) eval(v vec3) vec3 {
	return vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// solve finds x in m*x = b.
func (m *mat3) solve(b vec3) (vec3, bool) {
	inv, ok := m.inverse()
	if !ok {
		return vec3{}, false
	}
	return inv.eval(b), true
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// incDelta applies the Jacobian probe step, reflecting at the domain
// boundary.
func incDelta(v float64) float64 {
	if v < 1.0-jacobianEpsilon {
		return v + jacobianEpsilon
	}
	return v - jacobianEpsilon
}

func euclideanDistance(a, b vec3) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		dif := b[i] - a[i]
		sum += dif * dif
	}
	return math.Sqrt(sum)
}

// evaluator holds a flattened copy of a forward LUT for repeated
// tetrahedral lookups.
type evaluator struct {
	n       int
	domain  float64 // n - 1
	strideR int
	strideG int
	strideB int
	table   []float64
}

func newEvaluator(l *LUT) *evaluator {
	n := l.Size
	e := &evaluator{
		n:       n,
		domain:  float64(n - 1),
		strideR: 3,
		strideG: 3 * n,
		strideB: 3 * n * n,
		table:   make([]float64, 3*n*n*n),
	}
	for i, c := range l.Samples {
		e.table[3*i] = c.R
		e.table[3*i+1] = c.G
		e.table[3*i+2] = c.B
	}
	return e
}

// eval interpolates the forward transform at in, tetrahedrally.
func (e *evaluator) eval(in vec3) vec3 {
	px := clampUnit(in[0]) * e.domain
	py := clampUnit(in[1]) * e.domain
	pz := clampUnit(in[2]) * e.domain

	x0 := int(px)
	rx := px - float64(x0)
	y0 := int(py)
	ry := py - float64(y0)
	z0 := int(pz)
	rz := pz - float64(z0)

	X0 := x0 * e.strideR
	X1 := X0
	if in[0] < 1.0 {
		X1 += e.strideR
	}
	Y0 := y0 * e.strideG
	Y1 := Y0
	if in[1] < 1.0 {
		Y1 += e.strideG
	}
	Z0 := z0 * e.strideB
	Z1 := Z0
	if in[2] < 1.0 {
		Z1 += e.strideB
	}

	idx000 := X0 + Y0 + Z0
	idx100 := X1 + Y0 + Z0
	idx010 := X0 + Y1 + Z0
	idx110 := X1 + Y1 + Z0
	idx001 := X0 + Y0 + Z1
	idx101 := X1 + Y0 + Z1
	idx011 := X0 + Y1 + Z1
	idx111 := X1 + Y1 + Z1

	var out vec3
	switch {
	case rx >= ry && ry >= rz:
		for c := 0; c < 3; c++ {
			c0 := e.table[idx000+c]
			c1 := e.table[idx100+c] - c0
			c2 := e.table[idx110+c] - e.table[idx100+c]
			c3 := e.table[idx111+c] - e.table[idx110+c]
			out[c] = c0 + c1*rx + c2*ry + c3*rz
		}
	case rx >= rz && rz >= ry:
		for c := 0; c < 3; c++ {
			c0 := e.table[idx000+c]
			c1 := e.table[idx100+c] - c0
			c2 := e.table[idx111+c] - e.table[idx101+c]
			c3 := e.table[idx101+c] - e.table[idx100+c]
			out[c] = c0 + c1*rx + c2*ry + c3*rz
		}
	case rz >= rx && rx >= ry:
		for c := 0; c < 3; c++ {
			c0 := e.table[idx000+c]
			c1 := e.table[idx101+c] - e.table[idx001+c]
			c2 := e.table[idx111+c] - e.table[idx101+c]
			c3 := e.table[idx001+c] - c0
			out[c] = c0 + c1*rx + c2*ry + c3*rz
		}
	case ry >= rx && rx >= rz:
		for c := 0; c < 3; c++ {
			c0 := e.table[idx000+c]
			c1 := e.table[idx110+c] - e.table[idx010+c]
			c2 := e.table[idx010+c] - c0
			c3 := e.table[idx111+c] - e.table[idx110+c]
			out[c] = c0 + c1*rx + c2*ry + c3*rz
		}
	case ry >= rz && rz >= rx:
		for c := 0; c < 3; c++ {
			c0 := e.table[idx000+c]
			c1 := e.table[idx111+c] - e.table[idx011+c]
			c2 := e.table[idx010+c] - c0
			c3 := e.table[idx011+c] - e.table[idx010+c]
			out[c] = c0 + c1*rx + c2*ry + c3*rz
		}
	default:
		for c := 0; c < 3; c++ {
			c0 := e.table[idx000+c]
			c1 := e.table[idx111+c] - e.table[idx011+c]
			c2 := e.table[idx011+c] - e.table[idx001+c]
			c3 := e.table[idx001+c] - c0
			out[c] = c0 + c1*rx + c2*ry + c3*rz
		}
	}
	return out
}

// evalReverse searches x with eval(x) ~ target by Newton iterations:
//
//	x1 <- x - [J(x)]^-1 * (f(x) - target)
//
// hint seeds the search; the best guess seen is returned even when the
// iteration diverges or the Jacobian goes singular, which happens on
// locally flat (lossy) forward LUTs.
func (e *evaluator) evalReverse(target vec3, hint *vec3) vec3 {
	x := vec3{0.3, 0.3, 0.3}
	if hint != nil {
		x = *hint
	}

	result := x
	lastError := math.Inf(1)

	for i := 0; i < inversionMaxIterations; i++ {
		fx := e.eval(x)

		err := euclideanDistance(fx, target)
		if err >= lastError {
			break
		}
		lastError = err
		result = x

		if err <= 0 {
			break
		}

		// Obtain the slope (the Jacobian) by finite differences.
		var jacobian mat3
		for j := 0; j < 3; j++ {
			xd := x
			xd[j] = incDelta(xd[j])
			fxd := e.eval(xd)
			jacobian[0][j] = (fxd[0] - fx[0]) / jacobianEpsilon
			jacobian[1][j] = (fxd[1] - fx[1]) / jacobianEpsilon
			jacobian[2][j] = (fxd[2] - fx[2]) / jacobianEpsilon
		}

		step, ok := jacobian.solve(vec3{fx[0] - target[0], fx[1] - target[1], fx[2] - target[2]})
		if !ok {
			break
		}

		for j := 0; j < 3; j++ {
			x[j] = clampUnit(x[j] - step[j])
		}
	}

	return result
}

// Eval evaluates the forward transform at c.
func (l *LUT) Eval(c colorful.Color) colorful.Color {
	out := newEvaluator(l).eval(vec3{c.R, c.G, c.B})
	return colorful.Color{R: out[0], G: out[1], B: out[2]}
}

// Invert bakes the approximate inverse of forward onto a cubic grid of
// the given size. Forward LUTs are generally lossy and not exactly
// invertible, so the result is a best-effort approximation.
func Invert(forward *LUT, size int) (*LUT, error) {
	if size < 2 {
		return nil, fmt.Errorf("cube size must be at least 2, got %d", size)
	}
	if err := forward.validate(); err != nil {
		return nil, err
	}

	e := newEvaluator(forward)

	title := "Reversed LUT"
	if forward.Title != "" {
		title = forward.Title + " (reversed)"
	}
	inverse := &LUT{
		Title:     title,
		Size:      size,
		DomainMin: [3]float64{0, 0, 0},
		DomainMax: [3]float64{1, 1, 1},
		Samples:   make([]colorful.Color, 0, size*size*size),
	}

	// Each solve seeds the next one; neighboring grid points land close
	// together on smooth transforms.
	var hint *vec3
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				target := vec3{
					float64(r) / float64(size-1),
					float64(g) / float64(size-1),
					float64(b) / float64(size-1),
				}
				x := e.evalReverse(target, hint)
				hint = &x
				inverse.Samples = append(inverse.Samples, colorful.Color{R: x[0], G: x[1], B: x[2]})
			}
		}
	}

	return inverse, nil
}
