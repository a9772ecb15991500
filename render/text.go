package render

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/plus3/cubespawn/cubes"
	"golang.org/x/image/font/basicfont"
)

const (
	StatsTop      = 25
	StatsLeft     = 5
	StatsFontSize = 40
)

var statsFace = text.NewGoXFace(basicfont.Face7x13)

// TextRun is one piece of text placed on screen.
type TextRun struct {
	Text string
	X, Y float64
	// Section is the index of the StatsText section the run came from.
	Section int
}

// LayoutStats splits the sections at line breaks and positions each run,
// starting at (left, top) and advancing by advance(s) per run. Runs are in
// unscaled font units multiplied by scale.
func LayoutStats(stats *cubes.StatsText, left, top, lineHeight, scale float64, advance func(string) float64) []TextRun {
	var runs []TextRun
	x, y := left, top
	for i, section := range stats.Sections {
		for j, line := range strings.Split(section.Value, "\n") {
			if j > 0 {
				x = left
				y += lineHeight * scale
			}
			if line == "" {
				continue
			}
			runs = append(runs, TextRun{Text: line, X: x, Y: y, Section: i})
			x += advance(line) * scale
		}
	}
	return runs
}

// DrawStats draws the stats block in the top-left corner, each section in
// its own colour.
func DrawStats(screen *ebiten.Image, stats *cubes.StatsText) {
	scale := float64(StatsFontSize) / float64(basicfont.Face7x13.Height)
	advance := func(s string) float64 { return text.Advance(s, statsFace) }

	for _, run := range LayoutStats(stats, StatsLeft, StatsTop, float64(basicfont.Face7x13.Height), scale, advance) {
		op := &text.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(run.X, run.Y)
		op.ColorScale.ScaleWithColor(stats.Sections[run.Section].Color)
		text.Draw(screen, run.Text, statsFace, op)
	}
}
