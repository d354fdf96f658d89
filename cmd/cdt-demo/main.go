// Command cdt-demo is the thin driver spec.md keeps out of the engine
// itself: it reads a point file (and optional hole polygon files, plain
// text or SVG fixtures) from disk, calls the cdt package, prints a summary,
// and renders the result to a PNG for visual inspection. None of this code
// is imported by the cdt package or anything it depends on.
package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/JoshVarga/svgparser"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/gocdt/cdt"
	"github.com/gocdt/cdt/internal/cdtlog"
)

var (
	app = kingpin.New("cdt-demo", "Triangulate a point set and render the result.")

	pointsFile = app.Flag("points", "file of input points").Required().String()
	holeFiles  = app.Flag("hole", "file of hole polygon vertices (repeatable)").Strings()
	svgMode    = app.Flag("svg", "parse --points/--hole files as SVG <polygon> fixtures instead of plain text").Bool()
	outFile    = app.Flag("out", "PNG file to write the render to").Default("triangulation.png").String()
	preview    = app.Flag("preview", "stream the render inline via iTerm2's imgcat protocol").Bool()
	verbose    = app.Flag("verbose", "enable debug logging").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *verbose {
		cdtlog.SetLogger(cdtlog.NewDevelopment())
	}

	points, err := readPolygon(*pointsFile)
	if err != nil {
		fatalf("reading points: %v", err)
	}

	var holes [][]cdt.Point
	for _, hf := range *holeFiles {
		h, err := readPolygon(hf)
		if err != nil {
			fatalf("reading hole %q: %v", hf, err)
		}
		holes = append(holes, h)
	}

	start := time.Now()
	triangles, err := cdt.Triangulate(points, holes...)
	elapsed := time.Since(start)
	if err != nil {
		fatalf("triangulate: %v", err)
	}

	fmt.Println(summary(len(points), len(triangles), len(holes), elapsed))

	if err := render(points, holes, triangles, *outFile); err != nil {
		fatalf("rendering: %v", err)
	}
	if *preview {
		imgcat.CatFile(*outFile, os.Stdout)
	}
}

func summary(points, triangles, holes int, elapsed time.Duration) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		aurora.Green(fmt.Sprintf("%d points", points)).String(),
		aurora.Cyan(fmt.Sprintf("%d triangles", triangles)).String(),
		aurora.Yellow(fmt.Sprintf("%d holes", holes)).String(),
		aurora.Gray(12, elapsed.String()).String(),
	)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf(format, args...)))
	os.Exit(1)
}

// readPolygon parses path as either a plain "x y" per line point list
// (mirroring the teacher's main.go parsePoint) or, in --svg mode, the first
// <polygon> found in an SVG document (mirroring the teacher's
// fixture_test.go LoadFixture).
func readPolygon(path string) ([]cdt.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if *svgMode {
		return parseSVGPolygon(f)
	}
	return parsePlainPoints(f)
}

func parsePlainPoints(f *os.File) ([]cdt.Point, error) {
	var points []cdt.Point
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed point line %q", line)
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x in %q: %w", line, err)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y in %q: %w", line, err)
		}
		points = append(points, cdt.Point{X: x, Y: y})
	}
	return points, scanner.Err()
}

func parseSVGPolygon(f *os.File) ([]cdt.Point, error) {
	root, err := svgparser.Parse(f, true)
	if err != nil {
		return nil, err
	}
	polygons := root.FindAll("polygon")
	if len(polygons) == 0 {
		return nil, fmt.Errorf("no <polygon> element found")
	}
	pointString := polygons[0].Attributes["points"]
	var points []cdt.Point
	for _, pair := range strings.Fields(pointString) {
		coords := strings.Split(pair, ",")
		if len(coords) != 2 {
			continue
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			return nil, err
		}
		points = append(points, cdt.Point{X: x, Y: y})
	}
	return points, nil
}

const renderPadding = 20.0

// render draws the triangulation wireframe, the hole boundaries, and a
// small readable label at each vertex, grounded on the teacher's
// polygon_list_draw.go / querygraph_draw.go debug-rendering conventions
// (flip the canvas so the origin is bottom-left, scale to fit, draw then
// save to PNG).
func render(points []cdt.Point, holes [][]cdt.Point, triangles []cdt.Triangle, path string) error {
	minX, minY, maxX, maxY := bounds(points)
	scale := 400 / math.Max(maxX-minX, maxY-minY)
	width := int(scale*(maxX-minX)) + int(renderPadding*2)
	height := int(scale*(maxY-minY)) + int(renderPadding*2)

	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.Clear()
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(renderPadding, renderPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(1 / scale)
	for _, t := range triangles {
		c.MoveTo(t.A.X, t.A.Y)
		c.LineTo(t.B.X, t.B.Y)
		c.LineTo(t.C.X, t.C.Y)
		c.ClosePath()
	}
	c.SetRGB(0.85, 0.9, 1)
	c.FillPreserve()
	c.SetRGB(0.1, 0.1, 0.4)
	c.Stroke()

	c.SetRGB(0.8, 0.1, 0.1)
	for _, hole := range holes {
		if len(hole) == 0 {
			continue
		}
		c.MoveTo(hole[0].X, hole[0].Y)
		for _, p := range hole[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
		c.Stroke()
	}

	// Labels are drawn after resetting to device space: drawing them under
	// the same scale transform as the geometry would scale the font size
	// along with it, making it illegible for anything but a 1:1 plot.
	c.Identity()
	if face, err := vertexLabelFace(); err == nil {
		c.SetFontFace(face)
		c.SetRGB(0, 0, 0)
		for i, p := range points {
			sx, sy := toScreen(p, minX, minY, scale, height)
			c.DrawStringAnchored(strconv.Itoa(i), sx, sy, 0.5, 0.5)
		}
	}

	return c.SavePNG(path)
}

// vertexLabelFace builds a small font face from the embedded Go Regular
// font via the freetype truetype package, rather than gg.LoadFontFace's
// filesystem lookup, so the CLI never depends on a system font being
// installed.
func vertexLabelFace() (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: 8}), nil
}

// toScreen mirrors the render transform (flip Y, scale, pad) by hand, for
// the label pass drawn after Identity() resets the context's matrix.
func toScreen(p cdt.Point, minX, minY, scale float64, height int) (x, y float64) {
	x = (p.X-minX)*scale + renderPadding
	y = float64(height) - ((p.Y-minY)*scale + renderPadding)
	return
}

func bounds(points []cdt.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}
