package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadTuningDefaults(t *testing.T) {
	tun, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tun.World.Size != 800 || tun.Tank.Radius != 4.32 {
		t.Fatalf("unexpected defaults: %+v", tun)
	}
	if tun.CellSize() != 2.16 {
		t.Fatalf("CellSize = %v", tun.CellSize())
	}
	if tun.Flock.PathWeight != 7 || tun.Flock.SeparationWeight != 3 {
		t.Fatalf("flock weights = %+v", tun.Flock)
	}
}

func TestTuningValidate(t *testing.T) {
	tun, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	tun.Tank.Radius = 0
	tun.Threat.Cosine = 2
	err = tun.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"tank.radius", "threat.cosine"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("err = %v, missing %s", err, want)
		}
	}
}

func TestLoadArena(t *testing.T) {
	a, err := LoadArena("ctf")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if len(a.Teams) != 2 || len(a.Boxes) == 0 {
		t.Fatalf("arena = %+v", a)
	}
	s := a.Space()
	if s.Len() != len(a.Boxes)+len(a.Circles) {
		t.Fatalf("space has %d shapes", s.Len())
	}
	if !s.IsObstructed(PointSpec{}.Vector(), 0) {
		t.Fatalf("center box missing")
	}
	if s.IsObstructed(a.Teams[0].Base.Vector(), 4) {
		t.Fatalf("base is obstructed")
	}

	if _, err := LoadArena("missing"); err == nil {
		t.Fatalf("expected error for missing arena")
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "trees"), 0o755); err != nil {
		t.Fatal(err)
	}
	custom := "name: custom\nroot: a\nnodes:\n  a: {do: do_nothing}\n"
	if err := os.WriteFile(filepath.Join(dir, "trees", "motion.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "trees", "extra.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	OverrideDir = dir
	t.Cleanup(func() { OverrideDir = "" })

	data, err := Load("trees/motion.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != custom {
		t.Fatalf("override not preferred: %q", data)
	}
	if _, ok := ModTime("trees/motion.yaml"); !ok {
		t.Fatalf("ModTime missing for override file")
	}
	if _, err := Load("trees/role.yaml"); err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}

	names, err := List("trees")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	seen := map[string]int{}
	for _, n := range names {
		seen[n]++
	}
	for _, want := range []string{"trees/motion.yaml", "trees/extra.yaml", "trees/shoot.yaml", "trees/role.yaml", "trees/drop_flag.yaml"} {
		if seen[want] != 1 {
			t.Fatalf("List = %v, want %s once", names, want)
		}
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "motion.yaml")
	for _, body := range []string{"name: m", "name: mo", "name: motion"} {
		if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case c := <-w.Changes:
		if filepath.Base(c.Path) != "motion.yaml" || c.Script {
			t.Fatalf("change = %+v, want motion.yaml spec", c)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("no change reported")
	}
	select {
	case c := <-w.Changes:
		t.Fatalf("burst reported twice: %+v", c)
	case <-time.After(3 * Settle):
	}

	if err := os.WriteFile(filepath.Join(dir, "in_range.tengo"), []byte("result := true"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case c := <-w.Changes:
		if !c.Script {
			t.Fatalf("tengo change not flagged as script: %+v", c)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no change reported for script")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Changes; ok {
		t.Fatalf("Changes still open after Close")
	}
}

func TestDebounceDropsTimerFiredBeforeTouch(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)
	d := newDebounce(stop)

	d.touch("motion.yaml")
	fired := settle{name: "motion.yaml", gen: d.gen}
	// an event lands after the first timer fired but before the loop
	// received its settle
	d.touch("motion.yaml")
	if d.fire(fired) {
		t.Fatalf("stale settle reported")
	}

	reported := 0
	deadline := time.After(3 * time.Second)
	for reported == 0 {
		select {
		case s := <-d.settled:
			if d.fire(s) {
				reported++
			}
		case <-deadline:
			t.Fatalf("burst never settled")
		}
	}
	select {
	case s := <-d.settled:
		if d.fire(s) {
			t.Fatalf("burst reported twice: %+v", s)
		}
	case <-time.After(3 * Settle):
	}
	if len(d.pending) != 0 {
		t.Fatalf("pending = %v, want empty", d.pending)
	}
}
