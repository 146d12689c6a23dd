package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Settle is how long a file must stay quiet before its change is reported.
const Settle = 100 * time.Millisecond

// Change is one settled edit to a watched config file.
type Change struct {
	Path string
	// Script is set for .tengo files; everything else is a YAML spec.
	Script bool
}

// Watcher reports edits to spec and script files in the watched
// directories. Editors write a file in several steps; each burst is
// reported once, Settle after its last event.
type Watcher struct {
	fsw     *fsnotify.Watcher
	Changes chan Change
	Errors  chan error

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	w := &Watcher{
		fsw:     fsw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for Changes and Errors to close.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		err = w.fsw.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	d := newDebounce(w.stop)
	defer func() {
		d.stopAll()
		close(w.Changes)
		close(w.Errors)
		close(w.done)
	}()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if relevant(ev) {
				d.touch(ev.Name)
			}
		case s := <-d.settled:
			if !d.fire(s) {
				continue
			}
			select {
			case w.Changes <- Change{Path: s.name, Script: isScriptFile(s.name)}:
			case <-w.stop:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.stop:
			return
		}
	}
}

type settle struct {
	name string
	gen  uint64
}

type pending struct {
	timer *time.Timer
	gen   uint64
}

// debounce tracks one timer per file. Every touch re-arms the file under a
// new generation, so a timer that already fired before the touch is
// dropped by fire instead of reporting the burst twice.
type debounce struct {
	settled chan settle
	stop    <-chan struct{}
	pending map[string]pending
	gen     uint64
}

func newDebounce(stop <-chan struct{}) *debounce {
	return &debounce{
		settled: make(chan settle),
		stop:    stop,
		pending: map[string]pending{},
	}
}

func (d *debounce) touch(name string) {
	if p, ok := d.pending[name]; ok {
		p.timer.Stop()
	}
	d.gen++
	s := settle{name: name, gen: d.gen}
	d.pending[name] = pending{
		gen: s.gen,
		timer: time.AfterFunc(Settle, func() {
			select {
			case d.settled <- s:
			case <-d.stop:
			}
		}),
	}
}

// fire reports whether s is the latest timer for its file, and forgets the
// file if so.
func (d *debounce) fire(s settle) bool {
	p, ok := d.pending[s.name]
	if !ok || p.gen != s.gen {
		return false
	}
	delete(d.pending, s.name)
	return true
}

func (d *debounce) stopAll() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	return isSpecFile(ev.Name) || isScriptFile(ev.Name)
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
