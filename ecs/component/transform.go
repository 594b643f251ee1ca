package component

import "github.com/milk9111/climbing/common"

// Transform is the world placement of an entity.
type Transform struct {
	common.Transform
}

var TransformComponent = NewComponent[Transform]()
