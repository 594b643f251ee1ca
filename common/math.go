package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World axes. Z is up, X is forward and Y is left.
var (
	AxisForward = mgl64.Vec3{1, 0, 0}
	AxisLeft    = mgl64.Vec3{0, 1, 0}
	AxisUp      = mgl64.Vec3{0, 0, 1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// SlerpShortest interpolates between two orientations along the shorter arc.
func SlerpShortest(a, b mgl64.Quat, t float64) mgl64.Quat {
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// SafeNormal returns the unit vector of v, or the zero vector when v is degenerate.
func SafeNormal(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// NormalizeAxis wraps an angle in degrees into (-180, 180].
func NormalizeAxis(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// DeltaAngleDegrees returns the signed shortest rotation from a to b.
func DeltaAngleDegrees(a, b float64) float64 {
	return NormalizeAxis(b - a)
}

// Rotator is an orientation expressed as Euler angles in degrees.
// Positive pitch raises the nose; yaw turns from +X toward +Y.
type Rotator struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

func (r Rotator) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(r.Yaw), AxisUp)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(-r.Pitch), AxisLeft)
	roll := mgl64.QuatRotate(mgl64.DegToRad(r.Roll), AxisForward)
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

// Vector returns the unit forward direction of the rotator.
func (r Rotator) Vector() mgl64.Vec3 {
	p := mgl64.DegToRad(r.Pitch)
	y := mgl64.DegToRad(r.Yaw)
	return mgl64.Vec3{math.Cos(p) * math.Cos(y), math.Cos(p) * math.Sin(y), math.Sin(p)}
}

// Leveled drops pitch and roll, keeping the heading.
func (r Rotator) Leveled() Rotator {
	return Rotator{Yaw: r.Yaw}
}

// DirectionRotator returns the rotator that faces along dir with zero roll.
func DirectionRotator(dir mgl64.Vec3) Rotator {
	yaw := math.Atan2(dir.Y(), dir.X())
	pitch := math.Atan2(dir.Z(), math.Hypot(dir.X(), dir.Y()))
	return Rotator{Pitch: mgl64.RadToDeg(pitch), Yaw: mgl64.RadToDeg(yaw)}
}

// QuatRotator decomposes an orientation into pitch, yaw and roll.
func QuatRotator(q mgl64.Quat) Rotator {
	q = q.Normalize()
	f := q.Rotate(AxisForward)
	if math.Abs(f.Z()) > 0.99999 {
		u := q.Rotate(AxisUp)
		if f.Z() > 0 {
			return Rotator{Pitch: 90, Yaw: mgl64.RadToDeg(math.Atan2(-u.Y(), -u.X()))}
		}
		return Rotator{Pitch: -90, Yaw: mgl64.RadToDeg(math.Atan2(u.Y(), u.X()))}
	}

	yaw := mgl64.RadToDeg(math.Atan2(f.Y(), f.X()))
	pitch := mgl64.RadToDeg(math.Asin(mgl64.Clamp(f.Z(), -1, 1)))
	base := Rotator{Pitch: pitch, Yaw: yaw}.Quat()
	rest := base.Inverse().Mul(q)
	roll := NormalizeAxis(mgl64.RadToDeg(2 * math.Atan2(rest.V.X(), rest.W)))
	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// Transform is a world placement without scale.
type Transform struct {
	Location mgl64.Vec3
	Rotation mgl64.Quat
}

func IdentityTransform() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

func NewTransform(loc mgl64.Vec3, rot Rotator) Transform {
	return Transform{Location: loc, Rotation: rot.Quat()}
}

func (t Transform) rotation() mgl64.Quat {
	if t.Rotation.W == 0 && t.Rotation.V.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return t.Rotation.Normalize()
}

func (t Transform) Rotator() Rotator {
	return QuatRotator(t.rotation())
}

func (t Transform) Forward() mgl64.Vec3 {
	return t.rotation().Rotate(AxisForward)
}

func (t Transform) Right() mgl64.Vec3 {
	return t.rotation().Rotate(AxisLeft.Mul(-1))
}

func (t Transform) Up() mgl64.Vec3 {
	return t.rotation().Rotate(AxisUp)
}

func (t Transform) TransformDirection(dir mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(dir)
}

func (t Transform) InverseTransformDirection(dir mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Inverse().Rotate(dir)
}

func (t Transform) TransformLocation(local mgl64.Vec3) mgl64.Vec3 {
	return t.Location.Add(t.rotation().Rotate(local))
}

func (t Transform) InverseTransformLocation(world mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Inverse().Rotate(world.Sub(t.Location))
}

// Relative expresses t in the space of parent.
func (t Transform) Relative(parent Transform) Transform {
	inv := parent.rotation().Inverse()
	return Transform{
		Location: inv.Rotate(t.Location.Sub(parent.Location)),
		Rotation: inv.Mul(t.rotation()).Normalize(),
	}
}

// Compose places a parent-relative transform back into world space.
func (t Transform) Compose(parent Transform) Transform {
	return Transform{
		Location: parent.TransformLocation(t.Location),
		Rotation: parent.rotation().Mul(t.rotation()).Normalize(),
	}
}
