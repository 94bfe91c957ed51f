package timeseries

// Element is the algebra a table element must support so that rows can be
// linearly interpolated: addition, subtraction and scaling by a real scalar.
// The constraint is self-referential so that concrete element types keep
// their identity through the arithmetic (no boxing on the query path).
type Element[E any] interface {
	Add(other E) E
	Sub(other E) E
	Scale(f float64) E
}

// Lerp computes prev + fraction*(next-prev).
func Lerp[E Element[E]](prev, next E, fraction float64) E {
	return prev.Add(next.Sub(prev).Scale(fraction))
}

// Real is a scalar table element.
type Real float64

func (r Real) Add(other Real) Real { return r + other }

func (r Real) Sub(other Real) Real { return r - other }

func (r Real) Scale(f float64) Real { return Real(float64(r) * f) }

// Vec3 is a fixed-size 3-vector table element, e.g. a marker position or a
// force vector.
type Vec3 [3]float64

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v[0] + other[0], v[1] + other[1], v[2] + other[2]}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v[0] - other[0], v[1] - other[1], v[2] - other[2]}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v[0] * f, v[1] * f, v[2] * f}
}
