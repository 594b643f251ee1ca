package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// AssetKind tells a hot reloader what a changed file affects.
type AssetKind int

const (
	AssetUnknown AssetKind = iota
	AssetTuning
	AssetPrefab
	AssetScript
	AssetLevel
)

func (k AssetKind) String() string {
	switch k {
	case AssetTuning:
		return "tuning"
	case AssetPrefab:
		return "prefab"
	case AssetScript:
		return "script"
	case AssetLevel:
		return "level"
	default:
		return "unknown"
	}
}

// Classify maps a file path onto the asset it holds.
func Classify(path string) AssetKind {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".tengo":
		return AssetScript
	case ".json":
		return AssetLevel
	case ".yaml", ".yml":
		if base == ClimbConfigFile {
			return AssetTuning
		}
		return AssetPrefab
	default:
		return AssetUnknown
	}
}

// Change is one debounced file change.
type Change struct {
	Path string
	Kind AssetKind
}

// Watcher reports changes to prefab, script and level files. Editors tend to
// write a file several times in a row; repeats within Debounce are dropped.
type Watcher struct {
	Changes chan Change
	Errors  chan error

	Debounce time.Duration

	fs      *fsnotify.Watcher
	closeCh chan struct{}
	once    sync.Once
	done    chan struct{}
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		Debounce: 100 * time.Millisecond,
		fs:       fw,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Both channels are closed once it returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			kind := Classify(event.Name)
			if kind == AssetUnknown {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.Debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Changes <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
