package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs/component"
)

// HangPose returns the transform the character occupies while hanging from
// hold. offset.X pushes the body away from the hold and offset.Z drops it
// along the character's up axis.
func HangPose(hold Climbable, character common.Transform, capsule component.Capsule, offset mgl64.Vec3) common.Transform {
	pose := hold.Pose()
	anchor := pose.Location
	vertical := character.Up().Mul(offset.Z() + capsule.HalfHeight)

	if l, ok := hold.(Ledge); ok {
		climbUp := l.ClimbUpTransform(character)
		facing := climbUp.Forward()
		loc := climbUp.Location.Sub(vertical).Add(facing.Mul(-offset.X()))
		return common.NewTransform(loc, common.DirectionRotator(facing.Mul(-1)))
	}

	facing := pose.Forward()
	loc := anchor.Sub(vertical).Add(facing.Mul(offset.X()))
	return common.NewTransform(loc, common.DirectionRotator(facing))
}
