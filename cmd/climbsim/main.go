package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/ecs/entity"
	"github.com/milk9111/climbing/ecs/system"
	"github.com/milk9111/climbing/levels"
	"github.com/sirupsen/logrus"
)

func main() {
	levelName := flag.String("level", "wall", "level name in levels/ (basename, .json optional)")
	ticks := flag.Int("ticks", 1200, "number of ticks to simulate")
	hz := flag.Float64("hz", 60, "simulation rate")
	script := flag.String("script", "", "override the player's input script")
	debug := flag.Bool("debug", false, "enable debug logging")
	jsonLogs := flag.Bool("json", false, "log as JSON")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stdout)
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if *jsonLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := run(log, *levelName, *script, *ticks, *hz); err != nil {
		log.WithError(err).Fatal("climbsim failed")
	}
}

func run(log *logrus.Logger, levelName, script string, ticks int, hz float64) error {
	if hz <= 0 {
		return fmt.Errorf("hz must be positive, got %g", hz)
	}
	name := levelName
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	lvl, err := levels.LoadLevel(name)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	system.Install(w, log, lvl.Floor, nil)
	if _, err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return err
	}

	player, _, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return fmt.Errorf("level %q has no player", lvl.Name)
	}
	if script != "" {
		if err := ecs.Add(w, player, component.ScriptComponent, &component.Script{Path: script}); err != nil {
			return err
		}
	}

	events := w.Events()
	events.Subscribe(ecs.EventGrabbedNewHold, func(evt ecs.Event) {
		g := evt.Data.(ecs.GrabEvent)
		log.WithFields(logrus.Fields{
			"tick":      w.Tick(),
			"character": g.Character,
			"hold":      g.Hold,
			"direction": g.Direction,
			"ledge":     g.Ledge,
		}).Info("grabbed")
	})
	events.Subscribe(ecs.EventClimbPhaseChanged, func(evt ecs.Event) {
		p := evt.Data.(ecs.PhaseEvent)
		log.WithFields(logrus.Fields{"tick": w.Tick(), "character": p.Character, "from": p.From, "to": p.To}).Info("phase")
	})
	events.Subscribe(ecs.EventDetached, func(evt ecs.Event) {
		log.WithFields(logrus.Fields{"tick": w.Tick(), "character": evt.Data}).Info("detached")
	})

	dt := 1 / hz
	for i := 0; i < ticks; i++ {
		w.Update(dt)
	}

	t, _ := ecs.Get(w, player, component.TransformComponent)
	st, _ := ecs.Get(w, player, component.ClimbStateComponent)
	fields := logrus.Fields{"ticks": ticks}
	if t != nil {
		fields["location"] = fmt.Sprintf("%.1f,%.1f,%.1f", t.Location.X(), t.Location.Y(), t.Location.Z())
	}
	if st != nil {
		fields["phase"] = st.Phase.String()
	}
	log.WithFields(fields).Info("done")
	return nil
}
