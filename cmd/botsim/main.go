package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/milk9111/botcore/bot"
	"github.com/milk9111/botcore/config"
	"github.com/milk9111/botcore/sim"
)

func main() {
	arenaName := flag.String("arena", "ctf", "arena name in arenas/ (basename, no extension)")
	ticks := flag.Int("ticks", 6000, "number of ticks to run")
	dt := flag.Float64("dt", 0.05, "seconds per tick")
	teamSize := flag.Int("team-size", 3, "robots per team")
	seed := flag.Uint64("seed", 1, "random seed for shot cadence")
	configDir := flag.String("config-dir", "", "directory whose files override the built-in config")
	watch := flag.Bool("watch", false, "reload decision trees from -config-dir when they change")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	every := flag.Int("report", 200, "log scores and roles every N ticks")
	flag.Parse()

	lvl, err := charmlog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           lvl,
		Prefix:          "botsim",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})))

	if err := run(*arenaName, *ticks, *dt, *teamSize, *seed, *configDir, *watch, *every); err != nil {
		slog.Error("botsim failed", "error", err)
		os.Exit(1)
	}
}

func run(arenaName string, ticks int, dt float64, teamSize int, seed uint64, configDir string, watch bool, every int) error {
	config.OverrideDir = configDir

	tun, err := config.LoadTuning()
	if err != nil {
		return err
	}
	arena, err := config.LoadArena(arenaName)
	if err != nil {
		return err
	}
	trees, err := bot.LoadTrees()
	if err != nil {
		return err
	}
	set := bot.NewTreeSet(trees)

	m, err := sim.New(arena, tun, sim.Options{TeamSize: teamSize, Seed: seed, Trees: set})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if watch {
		if configDir == "" {
			return fmt.Errorf("-watch needs -config-dir")
		}
		w, err := config.NewWatcher(filepath.Join(configDir, "trees"))
		if err != nil {
			return fmt.Errorf("watch trees: %w", err)
		}
		defer w.Close()
		go reloadTrees(ctx, w, set)
	}

	tick := 0
	for tick < ticks && ctx.Err() == nil {
		m.Step(dt)
		tick++
		if every > 0 && tick%every == 0 {
			report(m, tick)
		}
	}
	if every <= 0 || tick%every != 0 {
		report(m, tick)
	}
	return nil
}

// reloadTrees recompiles the whole tree set on every change. A set that
// fails to compile is logged and the running one kept.
func reloadTrees(ctx context.Context, w *config.Watcher, set *bot.TreeSet) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-w.Changes:
			if !ok {
				return
			}
			trees, err := bot.LoadTrees()
			if err != nil {
				slog.Warn("tree reload failed", "file", c.Path, "error", err)
				continue
			}
			set.Store(trees)
			slog.Info("trees reloaded", "file", c.Path)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

func report(m *sim.Match, tick int) {
	c := m.Deps().Coordinator
	for _, team := range m.Teams() {
		var roles []string
		for _, r := range []bot.Role{bot.RoleGuard, bot.RoleCapture, bot.RoleAttack} {
			roles = append(roles, fmt.Sprintf("%s=%v", r, c.Holders(team, r)))
		}
		slog.Info("standings",
			"tick", tick,
			"time", fmt.Sprintf("%.1fs", m.Time()),
			"team", team,
			"score", m.Score(team),
			"roles", strings.Join(roles, " "),
		)
	}
}
