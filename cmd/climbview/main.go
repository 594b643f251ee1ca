package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/ecs/entity"
	"github.com/milk9111/climbing/ecs/render"
	"github.com/milk9111/climbing/ecs/system"
	"github.com/milk9111/climbing/levels"
	"github.com/milk9111/climbing/prefabs"
	"github.com/sirupsen/logrus"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

type options struct {
	level    string
	debug    bool
	scripted bool
	zoom     float64
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "wall", "level name in levels/ (basename, .json optional)")
	flag.BoolVar(&opts.debug, "debug", false, "enable debug logging and the physics overlay")
	flag.BoolVar(&opts.scripted, "scripted", false, "keep the level's input scripts instead of the keyboard")
	flag.Float64Var(&opts.zoom, "zoom", 0.5, "camera zoom")
	flag.Parse()

	log := logrus.New()
	if opts.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(log, opts); err != nil {
		log.WithError(err).Fatal("climbview")
	}
}

func run(log *logrus.Logger, opts options) error {
	name := opts.level
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	game := &Game{
		log:      log,
		level:    name,
		debug:    opts.debug,
		scripted: opts.scripted,
		zoom:     opts.zoom,
	}
	if err := game.reload(); err != nil {
		return fmt.Errorf("load level %q: %w", name, err)
	}

	if watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"), "levels"); err != nil {
		log.WithError(err).Warn("hot reload disabled")
	} else {
		game.watcher = watcher
		defer watcher.Close()
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("climbing")
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

type Game struct {
	log      *logrus.Logger
	level    string
	debug    bool
	scripted bool
	zoom     float64

	world    *ecs.World
	pipeline *system.Pipeline
	view     *render.SideView
	player   ecs.Entity
	watcher  *prefabs.Watcher
}

func (g *Game) reload() error {
	lvl, err := levels.LoadLevel(g.level)
	if err != nil {
		return err
	}
	w := ecs.NewWorld()
	pipeline := system.Install(w, g.log, lvl.Floor, NewInputSystem())
	if _, err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return err
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if ok && !g.scripted {
		ecs.Remove(w, player, component.ScriptComponent)
	}

	g.world, g.pipeline, g.player = w, pipeline, player
	g.view = render.NewSideView(lvl.Floor)
	g.log.WithField("level", lvl.Name).Info("level loaded")
	return nil
}

func (g *Game) Update() error {
	g.drainWatcher()
	g.world.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.hotReload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watcher")
		default:
			return
		}
	}
}

func (g *Game) hotReload(change prefabs.Change) {
	base := filepath.Base(change.Path)
	log := g.log.WithFields(logrus.Fields{"file": base, "kind": change.Kind})

	switch change.Kind {
	case prefabs.AssetTuning:
		cfg, err := prefabs.LoadClimbConfig(base)
		if err != nil {
			log.WithError(err).Warn("reload climbing config")
			return
		}
		ecs.ForEach(g.world, component.ClimbConfigComponent, func(_ ecs.Entity, c *component.ClimbConfig) {
			*c = *cfg
		})
		log.Info("climbing config reloaded")
	case prefabs.AssetScript:
		src, err := os.ReadFile(change.Path)
		if err != nil {
			log.WithError(err).Warn("reload script")
			return
		}
		if !g.pipeline.Scripts.SetSource(base, src) {
			log.Debug("script unchanged")
			return
		}
		log.Info("script reloaded")
	default:
		if err := g.reload(); err != nil {
			log.WithError(err).Warn("reload level")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	cam := render.Camera{Zoom: g.zoom, W: screenWidth, H: screenHeight}
	if t, ok := ecs.Get(g.world, g.player, component.TransformComponent); ok {
		cam.X, cam.Z = t.Location.X(), t.Location.Z()
	}
	g.view.Draw(g.world, screen, cam)
	render.DrawHUD(g.world, screen)

	if g.debug {
		render.DrawPhysicsDebug(g.world.PhysicsWorld(), screen, render.Inset{
			X: screenWidth - 330, Y: 10, W: 320, H: 240,
			Scale:  0.2,
			Centre: cp.Vector{X: cam.X},
		})
	}
}

func (g *Game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}
