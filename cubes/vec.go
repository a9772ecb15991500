package cubes

import "math"

// Vec3 is a 3-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// AddV3 returns v + w.
func AddV3(v, w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// SubV3 returns v - w.
func SubV3(v, w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// ScaleV3 returns v scaled by s.
func ScaleV3(s float32, v Vec3) Vec3 {
	return Vec3{s * v.X, s * v.Y, s * v.Z}
}

// DotV3 returns the dot product of v and w.
func DotV3(v, w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func Cross(v, w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// LenV3 returns the Euclidean length of v.
func LenV3(v Vec3) float32 {
	return float32(math.Sqrt(float64(DotV3(v, v))))
}

// NormV3 returns v scaled to unit length; the zero vector is returned as is.
func NormV3(v Vec3) Vec3 {
	l := LenV3(v)
	if l == 0 {
		return v
	}
	return ScaleV3(1/l, v)
}
