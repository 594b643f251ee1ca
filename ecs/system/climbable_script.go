package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/prefabs"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// ClimbableScripts runs a climbable's tengo script each time it is grabbed.
// Scripts see grabs, enabled, moving and entity and may reassign enabled
// and moving. On failure the climbable keeps its previous state.
type ClimbableScripts struct {
	log      *logrus.Logger
	compiled map[string]*tengo.Compiled
	sources  map[string][]byte
	digests  map[string]uint64
}

func NewClimbableScripts(log *logrus.Logger) *ClimbableScripts {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ClimbableScripts{
		log:      log,
		compiled: map[string]*tengo.Compiled{},
		sources:  map[string][]byte{},
		digests:  map[string]uint64{},
	}
}

// SetSource overrides the embedded script for path. Used by hot reload and
// tests. It reports false when src matches the source already in use, in
// which case the compiled script is kept.
func (cs *ClimbableScripts) SetSource(path string, src []byte) bool {
	digest := xxh3.Hash(src)
	if d, ok := cs.digests[path]; ok && d == digest {
		return false
	}
	cs.digests[path] = digest
	cs.sources[path] = src
	delete(cs.compiled, path)
	return true
}

// OnGrabbed is a GrabHook.
func (cs *ClimbableScripts) OnGrabbed(w *ecs.World, e ecs.Entity, c *component.Climbable) {
	if c == nil || c.Script == "" {
		return
	}
	log := cs.log.WithFields(logrus.Fields{"entity": e, "script": c.Script})

	base, err := cs.load(c.Script)
	if err != nil {
		log.WithError(err).Error("climbable script: compile")
		return
	}

	run := base.Clone()
	_ = run.Set("grabs", int64(c.Grabs))
	_ = run.Set("enabled", c.Enabled)
	_ = run.Set("moving", c.Moving)
	_ = run.Set("entity", int64(e))
	if err := run.Run(); err != nil {
		log.WithError(err).Error("climbable script: run")
		return
	}

	c.Enabled = run.Get("enabled").Bool()
	c.Moving = run.Get("moving").Bool()
	log.WithFields(logrus.Fields{"enabled": c.Enabled, "moving": c.Moving}).Debug("climbable script: grabbed")
}

func (cs *ClimbableScripts) load(path string) (*tengo.Compiled, error) {
	if c, ok := cs.compiled[path]; ok {
		return c, nil
	}

	src, ok := cs.sources[path]
	if !ok {
		data, err := prefabs.LoadScript(path)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", path, err)
		}
		src = data
		cs.digests[path] = xxh3.Hash(src)
	}

	script := tengo.NewScript(src)
	_ = script.Add("grabs", int64(0))
	_ = script.Add("enabled", true)
	_ = script.Add("moving", false)
	_ = script.Add("entity", int64(0))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	cs.compiled[path] = compiled
	return compiled, nil
}
