package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/draw"

	"github.com/milk9111/botcore/bot"
	"github.com/milk9111/botcore/config"
	"github.com/milk9111/botcore/navgrid"
	"github.com/milk9111/botcore/pathing"
)

var (
	colFree    = color.RGBA{0xe8, 0xe8, 0xe8, 0xff}
	colBlocked = color.RGBA{0x30, 0x30, 0x30, 0xff}
	colRaw     = color.RGBA{0x40, 0x80, 0xe0, 0xff}
	colSmooth  = color.RGBA{0xe0, 0x30, 0x30, 0xff}
)

func main() {
	arenaName := flag.String("arena", "ctf", "arena name in arenas/ (basename, no extension)")
	from := flag.String("from", "-340,0", "start point as x,y")
	to := flag.String("to", "340,0", "goal point as x,y")
	out := flag.String("out", "", "write a PNG of the grid and path to this file")
	scale := flag.Int("scale", 3, "PNG pixels per grid cell")
	configDir := flag.String("config-dir", "", "directory whose files override the built-in config")
	level := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	lvl, err := charmlog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{Level: lvl, Prefix: "navdump"})))
	config.OverrideDir = *configDir

	start, err := parsePoint(*from)
	if err != nil {
		fatal("bad -from", err)
	}
	goal, err := parsePoint(*to)
	if err != nil {
		fatal("bad -to", err)
	}
	tun, err := config.LoadTuning()
	if err != nil {
		fatal("load tuning", err)
	}
	arena, err := config.LoadArena(*arenaName)
	if err != nil {
		fatal("load arena", err)
	}
	tun.World.Size = arena.Size

	g := bot.NewGraph(arena.Space(), tun)
	b := pathing.NewBuilder(g)
	b.MaxExpansions = tun.Planner.MaxExpansions

	raw, err := b.BuildRaw(start, goal)
	if err != nil {
		fatal("plan", err)
	}
	smooth := pathing.Smooth(g.Query, raw, g.Clearance)

	fmt.Printf("arena %s, cell %.3f, clearance %.3f\n", arena.Name, g.Mapper.CellSize(), g.Clearance)
	fmt.Printf("raw: %d cells, length %.2f\n", len(raw), length(raw))
	fmt.Printf("smoothed: %d waypoints, length %.2f\n", len(smooth), length(smooth))
	for i, p := range smooth {
		fmt.Printf("  %2d  (%8.2f, %8.2f)\n", i, p.X, p.Y)
	}

	if *out != "" {
		if err := writePNG(*out, g, raw, smooth, max(1, *scale)); err != nil {
			fatal("write png", err)
		}
		slog.Info("wrote raster", "file", *out)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func parsePoint(s string) (cp.Vector, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return cp.Vector{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return cp.Vector{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return cp.Vector{}, err
	}
	return cp.Vector{X: x, Y: y}, nil
}

func length(pts []cp.Vector) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}

// writePNG rasterizes one pixel per cell, then scales up with nearest
// neighbor so cells stay crisp.
func writePNG(path string, g *navgrid.Graph, raw, smooth []cp.Vector, scale int) error {
	lo := g.Mapper.ToGrid(cp.Vector{X: g.Bounds.L, Y: g.Bounds.B})
	hi := g.Mapper.ToGrid(cp.Vector{X: g.Bounds.R, Y: g.Bounds.T})
	w, h := hi.X-lo.X+1, hi.Y-lo.Y+1
	px := func(n navgrid.Node) (int, int) { return n.X - lo.X, hi.Y - n.Y }

	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			n := navgrid.Node{X: x, Y: y}
			c := colBlocked
			if g.Accessible(n) {
				c = colFree
			}
			ix, iy := px(n)
			src.SetRGBA(ix, iy, c)
		}
	}
	for _, p := range raw {
		ix, iy := px(g.Mapper.ToGrid(p))
		src.SetRGBA(ix, iy, colRaw)
	}
	for i := 1; i < len(smooth); i++ {
		a, b := smooth[i-1], smooth[i]
		steps := int(a.Distance(b)/g.Mapper.CellSize()) + 1
		for s := 0; s <= steps; s++ {
			ix, iy := px(g.Mapper.ToGrid(a.Lerp(b, float64(s)/float64(steps))))
			src.SetRGBA(ix, iy, colSmooth)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
