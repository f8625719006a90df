// Package signature implements the freehand signature capture surface.
// Clients may send raw stroke coordinates instead of a rendered image;
// the pad replays them and rasterizes the result to a PNG.
package signature

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
)

// Point is a single contact coordinate on the pad
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous pen-down..pen-up path
type Stroke []Point

// Pad captures freehand strokes on a fixed-size surface
type Pad struct {
	width   int
	height  int
	strokes []Stroke
	active  bool
}

// NewPad creates an empty pad of the given pixel dimensions
func NewPad(width, height int) *Pad {
	return &Pad{width: width, height: height}
}

// Begin starts a new stroke at the contact point and marks the pad
// non-empty
func (p *Pad) Begin(x, y float64) {
	p.strokes = append(p.strokes, Stroke{{X: x, Y: y}})
	p.active = true
}

// Extend appends the current contact point to the open stroke. It does
// nothing when no stroke is open.
func (p *Pad) Extend(x, y float64) {
	if !p.active || len(p.strokes) == 0 {
		return
	}
	last := len(p.strokes) - 1
	p.strokes[last] = append(p.strokes[last], Point{X: x, Y: y})
}

// End closes the open stroke
func (p *Pad) End() {
	p.active = false
}

// Clear erases all drawn content and resets the non-empty flag
func (p *Pad) Clear() {
	p.strokes = nil
	p.active = false
}

// IsEmpty reports whether any stroke has been drawn
func (p *Pad) IsEmpty() bool {
	return len(p.strokes) == 0
}

// ImagePNG rasterizes the current surface content as a PNG: white
// background, black 2px strokes. Rendering an empty pad is permitted;
// rejecting empty signatures is the caller's job.
func (p *Pad) ImagePNG() ([]byte, error) {
	dc := gg.NewContext(p.width, p.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, stroke := range p.strokes {
		if len(stroke) == 0 {
			continue
		}
		dc.MoveTo(stroke[0].X, stroke[0].Y)
		if len(stroke) == 1 {
			// A tap with no movement still leaves a dot
			dc.LineTo(stroke[0].X+0.1, stroke[0].Y+0.1)
		}
		for _, pt := range stroke[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode signature PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Replay draws a full set of recorded strokes onto an empty pad
func Replay(width, height int, strokes []Stroke) *Pad {
	pad := NewPad(width, height)
	for _, stroke := range strokes {
		if len(stroke) == 0 {
			continue
		}
		pad.Begin(stroke[0].X, stroke[0].Y)
		for _, pt := range stroke[1:] {
			pad.Extend(pt.X, pt.Y)
		}
		pad.End()
	}
	return pad
}
