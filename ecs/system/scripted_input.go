package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/prefabs"
	"github.com/sirupsen/logrus"
)

// ScriptedInputSystem fills Input from a tengo script once per tick. The
// script reads tick, phase, mode and grounded and assigns forward, right,
// jump, climb and release.
type ScriptedInputSystem struct {
	log   *logrus.Logger
	cache map[ecs.Entity]*inputScript
}

type inputScript struct {
	path     string
	compiled *tengo.Compiled
}

func NewScriptedInputSystem(log *logrus.Logger) *ScriptedInputSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ScriptedInputSystem{log: log, cache: map[ecs.Entity]*inputScript{}}
}

func (s *ScriptedInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for e := range s.cache {
		if !ecs.Has(w, e, component.ScriptComponent) {
			delete(s.cache, e)
		}
	}

	ecs.ForEach2(w, component.ScriptComponent, component.InputComponent, func(e ecs.Entity, sc *component.Script, input *component.Input) {
		rt, err := s.runtime(e, sc)
		if err != nil {
			s.log.WithError(err).WithField("entity", e).Error("input script: compile")
			return
		}

		phase := component.ClimbDetached
		if st, ok := ecs.Get(w, e, component.ClimbStateComponent); ok {
			phase = st.Phase
		}
		mode, grounded := component.MovementWalking, false
		if mv, ok := ecs.Get(w, e, component.MovementComponent); ok {
			mode, grounded = mv.Mode, mv.Grounded
		}

		c := rt.compiled
		_ = c.Set("tick", int64(w.Tick()))
		_ = c.Set("phase", phase.String())
		_ = c.Set("mode", mode.String())
		_ = c.Set("grounded", grounded)
		for _, name := range []string{"forward", "right"} {
			_ = c.Set(name, 0.0)
		}
		for _, name := range []string{"jump", "climb", "release"} {
			_ = c.Set(name, false)
		}

		if err := c.Run(); err != nil {
			s.log.WithError(err).WithField("entity", e).Error("input script: run")
			return
		}

		prevJump := input.Jump
		input.Forward = c.Get("forward").Float()
		input.Right = c.Get("right").Float()
		input.Jump = c.Get("jump").Bool()
		input.JumpPressed = input.Jump && !prevJump
		input.ClimbPressed = c.Get("climb").Bool()
		input.ReleaseClimb = c.Get("release").Bool()
	})
}

func (s *ScriptedInputSystem) runtime(e ecs.Entity, sc *component.Script) (*inputScript, error) {
	if rt, ok := s.cache[e]; ok && rt.path == sc.Path {
		return rt, nil
	}

	src := sc.Source
	if len(src) == 0 {
		data, err := prefabs.LoadScript(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", sc.Path, err)
		}
		src = data
	}

	script := tengo.NewScript(src)
	_ = script.Add("tick", int64(0))
	_ = script.Add("phase", "")
	_ = script.Add("mode", "")
	_ = script.Add("grounded", false)
	_ = script.Add("forward", 0.0)
	_ = script.Add("right", 0.0)
	_ = script.Add("jump", false)
	_ = script.Add("climb", false)
	_ = script.Add("release", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	rt := &inputScript{path: sc.Path, compiled: compiled}
	s.cache[e] = rt
	return rt, nil
}
