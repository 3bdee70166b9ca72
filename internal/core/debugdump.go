package core

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/trapeze-go/triangulate/dbg"
)

// dbgDrawPadding keeps unbounded trapezoids visibly off the shape's edge
// rather than clipped flush against the canvas border.
const dbgDrawPadding = 20.0

type trapQuad struct {
	handle                                Handle[Trapezoid]
	leftTop, leftBottom, rightTop, rightBottom, topY, bottomY float64
	inside                                bool
}

// trapezoidQuads resolves every trapezoid's four corners into finite
// coordinates, extending unbounded sides out to a padded bounding box so
// infinite trapezoids still render as something.
func (e *Engine) trapezoidQuads() []trapQuad {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	e.Trapezoids.Each(func(_ Handle[Trapezoid], t *Trapezoid) {
		for _, segH := range []Handle[Segment]{t.Left, t.Right} {
			if !segH.IsValid() {
				continue
			}
			seg := e.Segments.Get(segH)
			for _, c := range []Coords{seg.CMin, seg.CMax} {
				minX, minY = math.Min(minX, c.X), math.Min(minY, c.Y)
				maxX, maxY = math.Max(maxX, c.X), math.Max(maxY, c.Y)
			}
		}
	})
	if math.IsInf(minX, 1) {
		return nil
	}
	loX, hiX := minX-dbgDrawPadding, maxX+dbgDrawPadding
	loY, hiY := minY-dbgDrawPadding, maxY+dbgDrawPadding

	xAt := func(segH Handle[Segment], fallback, y float64) float64 {
		if !segH.IsValid() {
			return fallback
		}
		seg := e.Segments.Get(segH)
		if seg.IsHorizontal() {
			return seg.CMin.X
		}
		return seg.SolveForX(y)
	}

	var quads []trapQuad
	e.Trapezoids.Each(func(h Handle[Trapezoid], t *Trapezoid) {
		topY, bottomY := hiY, loY
		if t.Up.IsValid() {
			topY = e.Nexuses.Get(t.Up).Coords.Y
		}
		if t.Down.IsValid() {
			bottomY = e.Nexuses.Get(t.Down).Coords.Y
		}
		quads = append(quads, trapQuad{
			handle:      h,
			leftTop:     xAt(t.Left, loX, topY),
			leftBottom:  xAt(t.Left, loX, bottomY),
			rightTop:    xAt(t.Right, hiX, topY),
			rightBottom: xAt(t.Right, hiX, bottomY),
			topY:        topY,
			bottomY:     bottomY,
			inside:      e.TrapezoidIsInside(h),
		})
	})
	return quads
}

// dumpTrapezoidation writes a hand-rolled SVG of the current trapezoid graph
// to cfg.DebugDumpPath (suffixed with label, if given), and — best-effort,
// only when imgcat's terminal detection succeeds — renders and prints a PNG
// preview inline. Drawing never fails the caller's triangulation: errors
// here are logged and swallowed.
func (e *Engine) dumpTrapezoidation(cfg Config, label string) {
	if !cfg.DebugDump {
		return
	}
	quads := e.trapezoidQuads()
	if quads == nil {
		return
	}

	path := cfg.DebugDumpPath
	if label != "" {
		path = fmt.Sprintf("%s.%s", path, label)
	}

	if err := writeSVG(path+".svg", quads, cfg.HideLabels); err != nil {
		e.logger.Debug("debug_dump_svg_failed", "path", path, "error", err.Error())
	}
	if err := writePNGPreview(quads, cfg.HideLabels); err != nil {
		e.logger.Debug("debug_dump_preview_failed", "error", err.Error())
	}
}

func writeSVG(path string, quads []trapQuad, hideLabels bool) error {
	var b strings.Builder
	minX, minY, maxX, maxY := boundsOf(quads)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n", minX, minY, maxX-minX, maxY-minY)
	for _, q := range quads {
		fill := "#ffff0080"
		if q.inside {
			fill = "#4d33ff80"
		}
		fmt.Fprintf(&b, `<polygon points="%g,%g %g,%g %g,%g %g,%g" fill="%s" stroke="#00ff00" stroke-width="0.01" />`+"\n",
			q.leftTop, q.topY, q.leftBottom, q.bottomY, q.rightBottom, q.bottomY, q.rightTop, q.topY, fill)
		if !hideLabels {
			cx := (q.leftTop + q.leftBottom + q.rightTop + q.rightBottom) / 4
			cy := (q.topY + q.bottomY) / 2
			fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="0.3" fill="white">%s</text>`+"\n", cx, cy, dbg.Name(q.handle))
		}
	}
	b.WriteString("</svg>\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func boundsOf(quads []trapQuad) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, q := range quads {
		for _, x := range []float64{q.leftTop, q.leftBottom, q.rightTop, q.rightBottom} {
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		}
		minY, maxY = math.Min(minY, q.topY), math.Max(maxY, q.bottomY)
	}
	return
}

// writePNGPreview renders the same quads via gg and prints them inline with
// imgcat, for an interactive terminal session watching the construction live.
func writePNGPreview(quads []trapQuad, hideLabels bool) error {
	minX, minY, maxX, maxY := boundsOf(quads)
	const scale = 40.0
	const padPx = 40
	width := int(scale*(maxX-minX)) + padPx*2
	height := int(scale*(maxY-minY)) + padPx*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(padPx, padPx)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)
	c.SetLineWidth(2 / scale)

	for _, q := range quads {
		c.MoveTo(q.leftTop, q.topY)
		c.LineTo(q.leftBottom, q.bottomY)
		c.LineTo(q.rightBottom, q.bottomY)
		c.LineTo(q.rightTop, q.topY)
		c.ClosePath()
		if q.inside {
			c.SetRGBA(0.3, 0.2, 1, 0.5)
		} else {
			c.SetRGBA(1, 1, 0, 0.5)
		}
		c.FillPreserve()
		c.SetRGB(0, 1, 0)
		c.Stroke()
		if !hideLabels {
			cx := (q.leftTop + q.leftBottom + q.rightTop + q.rightBottom) / 4
			cy := (q.topY + q.bottomY) / 2
			c.Push()
			c.Identity()
			c.SetRGB(1, 1, 1)
			c.DrawStringAnchored(dbg.Name(q.handle), cx, cy, 0.5, 0.5)
			c.Pop()
		}
	}

	tmp, err := os.CreateTemp("", "triangulate-dbg-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if err := c.EncodePNG(tmp); err != nil {
		return err
	}
	return imgcat.CatFile(tmp.Name(), os.Stdout)
}
