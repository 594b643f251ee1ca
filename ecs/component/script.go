package component

// Script drives an entity's input from a tengo source file.
type Script struct {
	Path   string
	Source []byte
}

var ScriptComponent = NewComponent[Script]()
