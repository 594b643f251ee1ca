package ecs

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// ObjectType is the collision channel of a collider. Values double as
// chipmunk shape filter categories.
type ObjectType uint

const (
	ObjectWorldStatic ObjectType = 1 << iota
	ObjectWorldDynamic
	ObjectPawn
)

const ObjectAll = ObjectWorldStatic | ObjectWorldDynamic | ObjectPawn

type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
)

// OverlapHit is one collider found by an overlap query.
type OverlapHit struct {
	Entity          Entity
	Type            ObjectType
	BlocksCharacter bool
}

type physicsBody struct {
	entity Entity
	kind   ShapeKind
	center mgl64.Vec3
	radius float64
	half   mgl64.Vec3
	typ    ObjectType
	blocks bool

	body  *cp.Body
	shape *cp.Shape
}

// PhysicsWorld answers overlap queries against registered colliders. The
// chipmunk space indexes each collider's XY footprint; hits from the
// broadphase are confirmed against the full 3D shape.
type PhysicsWorld struct {
	space  *cp.Space
	bodies map[Entity]*physicsBody
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		space:  cp.NewSpace(),
		bodies: make(map[Entity]*physicsBody),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// SetSphere registers or replaces a sphere collider for e.
func (pw *PhysicsWorld) SetSphere(e Entity, center mgl64.Vec3, radius float64, typ ObjectType, blocks bool) {
	if pw == nil || !e.Valid() || radius <= 0 {
		return
	}
	pw.set(&physicsBody{entity: e, kind: ShapeSphere, center: center, radius: radius, typ: typ, blocks: blocks})
}

// SetBox registers or replaces an axis-aligned box collider for e.
func (pw *PhysicsWorld) SetBox(e Entity, center, halfExtents mgl64.Vec3, typ ObjectType, blocks bool) {
	if pw == nil || !e.Valid() {
		return
	}
	pw.set(&physicsBody{entity: e, kind: ShapeBox, center: center, half: halfExtents, typ: typ, blocks: blocks})
}

func (pw *PhysicsWorld) set(pb *physicsBody) {
	pw.Remove(pb.entity)

	pb.body = cp.NewKinematicBody()
	pb.body.SetPosition(cp.Vector{X: pb.center.X(), Y: pb.center.Y()})
	switch pb.kind {
	case ShapeSphere:
		pb.shape = cp.NewCircle(pb.body, pb.radius, cp.Vector{})
	default:
		pb.shape = cp.NewBox(pb.body, 2*pb.half.X(), 2*pb.half.Y(), 0)
	}
	pb.shape.SetSensor(true)
	pb.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(pb.typ), cp.ALL_CATEGORIES))
	pb.shape.UserData = pb.entity

	pw.space.AddBody(pb.body)
	pw.space.AddShape(pb.shape)
	pw.bodies[pb.entity] = pb
}

// Move relocates the collider of e, reindexing its footprint.
func (pw *PhysicsWorld) Move(e Entity, center mgl64.Vec3) {
	if pw == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok || pb.center == center {
		return
	}
	pb.center = center
	pw.space.RemoveShape(pb.shape)
	pb.body.SetPosition(cp.Vector{X: center.X(), Y: center.Y()})
	pw.space.AddShape(pb.shape)
}

func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	pw.space.RemoveShape(pb.shape)
	pw.space.RemoveBody(pb.body)
	delete(pw.bodies, e)
}

func (pw *PhysicsWorld) Has(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.bodies[e]
	return ok
}

// Len returns the number of registered colliders.
func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.bodies)
}

// SphereOverlap returns colliders of the given types that intersect the sphere.
func (pw *PhysicsWorld) SphereOverlap(center mgl64.Vec3, radius float64, types ObjectType) []OverlapHit {
	if pw == nil || radius <= 0 {
		return nil
	}
	bb := cp.NewBBForCircle(cp.Vector{X: center.X(), Y: center.Y()}, radius)
	return pw.overlap(bb, types, func(pb *physicsBody) bool {
		return pb.distanceToSegment(center, center) <= radius
	})
}

// CapsuleOverlap returns colliders of the given types that intersect a
// capsule standing along world Z. halfHeight includes the hemispheres.
func (pw *PhysicsWorld) CapsuleOverlap(center mgl64.Vec3, radius, halfHeight float64, types ObjectType) []OverlapHit {
	if pw == nil || radius <= 0 {
		return nil
	}
	seg := math.Max(halfHeight-radius, 0)
	a := center.Sub(mgl64.Vec3{0, 0, seg})
	b := center.Add(mgl64.Vec3{0, 0, seg})
	bb := cp.NewBBForCircle(cp.Vector{X: center.X(), Y: center.Y()}, radius)
	return pw.overlap(bb, types, func(pb *physicsBody) bool {
		return pb.distanceToSegment(a, b) <= radius
	})
}

func (pw *PhysicsWorld) overlap(bb cp.BB, types ObjectType, exact func(*physicsBody) bool) []OverlapHit {
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(types))
	var hits []OverlapHit
	pw.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		e, ok := shape.UserData.(Entity)
		if !ok {
			return
		}
		pb := pw.bodies[e]
		if pb == nil || !exact(pb) {
			return
		}
		hits = append(hits, OverlapHit{Entity: e, Type: pb.typ, BlocksCharacter: pb.blocks})
	}, nil)
	sort.Slice(hits, func(i, j int) bool { return hits[i].Entity < hits[j].Entity })
	return hits
}

// distanceToSegment measures from the collider surface to a segment parallel
// to world Z (a == b for a point).
func (pb *physicsBody) distanceToSegment(a, b mgl64.Vec3) float64 {
	zLo, zHi := math.Min(a.Z(), b.Z()), math.Max(a.Z(), b.Z())
	switch pb.kind {
	case ShapeSphere:
		dxy := math.Hypot(pb.center.X()-a.X(), pb.center.Y()-a.Y())
		dz := intervalGap(pb.center.Z(), pb.center.Z(), zLo, zHi)
		return math.Max(math.Hypot(dxy, dz)-pb.radius, 0)
	default:
		dx := intervalGap(pb.center.X()-pb.half.X(), pb.center.X()+pb.half.X(), a.X(), a.X())
		dy := intervalGap(pb.center.Y()-pb.half.Y(), pb.center.Y()+pb.half.Y(), a.Y(), a.Y())
		dz := intervalGap(pb.center.Z()-pb.half.Z(), pb.center.Z()+pb.half.Z(), zLo, zHi)
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
}

func intervalGap(aLo, aHi, bLo, bHi float64) float64 {
	switch {
	case aHi < bLo:
		return bLo - aHi
	case bHi < aLo:
		return aLo - bHi
	default:
		return 0
	}
}
