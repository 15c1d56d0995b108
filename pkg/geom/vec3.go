package geom

import "math"

// zeroLength is the threshold below which a vector is treated as having
// no usable direction.
const zeroLength = 1e-12

// Vec3 is a 3D vector. It is an immutable value type with no identity
// beyond its components.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the sum of vectors a and b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Sub returns the difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Scale returns the vector a multiplied by the scalar s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{X: s * a.X, Y: s * a.Y, Z: s * a.Z}
}

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product of a and b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean length of a.
func (a Vec3) Length() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// Normalize returns a unit vector in the direction of a.
//
// A vector with length below 1e-12 has no usable direction; Normalize
// returns the zero vector in that case. Callers must treat a zero result
// as "undefined direction" and must not rely on unit length.
func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l < zeroLength {
		return Vec3{}
	}
	return Vec3{X: a.X / l, Y: a.Y / l, Z: a.Z / l}
}

// IsZero reports whether all components are exactly zero.
func (a Vec3) IsZero() bool {
	return a.X == 0 && a.Y == 0 && a.Z == 0
}

// AngleAround returns the angle of point p around the given axis, measured
// from the reference direction ref. The axis and reference are normalized
// internally; p is first projected onto the plane perpendicular to axis.
// The result is in [0, 2π). Used for placing annotations around a figure.
func AngleAround(p, axis, ref Vec3) float64 {
	n := axis.Normalize()
	if n.IsZero() {
		return 0
	}
	// Project p and ref onto the plane perpendicular to the axis.
	pp := p.Sub(n.Scale(p.Dot(n)))
	rp := ref.Sub(n.Scale(ref.Dot(n)))

	u := rp.Normalize()
	if u.IsZero() {
		return 0
	}
	v := n.Cross(u)

	angle := math.Atan2(pp.Dot(v), pp.Dot(u))
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
