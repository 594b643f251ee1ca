package component

import "github.com/milk9111/climbing/common"

// Attachment keeps an entity at a fixed placement relative to Parent.
type Attachment struct {
	Parent   uint64
	Relative common.Transform
}

var AttachmentComponent = NewComponent[Attachment]()
