package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Dir is where on-disk overrides of the embedded files are looked up,
// relative to the working directory.
var Dir = "prefabs"

// Load returns a prefab or tuning file, preferring an on-disk copy so edits
// are picked up without a rebuild.
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, prefabName(name))
}

// LoadScript returns a tengo script by name. "crumble.tengo",
// "scripts/crumble.tengo" and "prefabs/scripts/crumble.tengo" are the same
// script.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, scriptName(name))
}

func read(fsys embed.FS, name string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(name))); err == nil {
		return data, nil
	}
	return fsys.ReadFile(name)
}

func prefabName(name string) string {
	s := filepath.ToSlash(name)
	return strings.TrimPrefix(s, "prefabs/")
}

func scriptName(name string) string {
	s := prefabName(name)
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}
