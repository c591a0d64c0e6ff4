package shieldtext

import (
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultFontLadder is the candidate font sizes, in badge units, largest first
var DefaultFontLadder = []float64{14, 13, 12, 11, 10, 9, 8}

// lineGap is the space between two lines, as a fraction of the font size
const lineGap = 0.1

// Engine picks font sizes and positions for text inside badges.
// It holds no per-call state and can be shared between goroutines.
type Engine struct {
	font   *truetype.Font
	ladder []float64
}

func NewEngine(font *truetype.Font, ladder []float64) *Engine {
	if len(ladder) == 0 {
		ladder = DefaultFontLadder
	}
	return &Engine{font, ladder}
}

type Line struct {
	Text string
	// X is the left of the line's advance box, Baseline the y of its baseline. Both in pixels.
	X        float64
	Baseline float64
}

type Layout struct {
	// FontSize in badge units
	FontSize float64
	// FontPx is the font size in device pixels
	FontPx float64
	Lines  []Line
	// Fits is false when even the smallest candidate overflows the text area
	Fits bool
}

// measurement of a run of text, in pixels
type measurement struct {
	width  float64
	ascent float64
	// descent below the baseline, positive downwards
	descent float64
}

func (m measurement) height() float64 {
	return m.ascent + m.descent
}

func fixedToFloat(i fixed.Int26_6) float64 {
	return float64(i) / 64
}

func (e *Engine) newFace(fontPx float64) font.Face {
	return truetype.NewFace(e.font, &truetype.Options{
		Size: fontPx,
		DPI:  72,
	})
}

func measure(face font.Face, text string) measurement {
	bounds, advance := font.BoundString(face, text)
	return measurement{
		width:   fixedToFloat(advance),
		ascent:  math.Max(0, -fixedToFloat(bounds.Min.Y)),
		descent: math.Max(0, fixedToFloat(bounds.Max.Y)),
	}
}

// MeasureWidth gives the advance width of the text, in badge units, at a font size in badge units
func (e *Engine) MeasureWidth(text string, fontSize float64) float64 {
	face := e.newFace(fontSize)
	defer face.Close()

	return measure(face, text).width
}

// arrangement is a candidate set of lines at one font size
type arrangement struct {
	lines        []string
	measurements []measurement
	gap          float64
}

func (a *arrangement) size() Size {
	var size Size
	for i, m := range a.measurements {
		size.Width = math.Max(size.Width, m.width)
		size.Height += m.height()
		if i > 0 {
			size.Height += a.gap
		}
	}
	return size
}

func (e *Engine) arrange(face font.Face, fontPx float64, lines []string) *arrangement {
	a := &arrangement{lines: lines, gap: fontPx * lineGap}
	for _, line := range lines {
		a.measurements = append(a.measurements, measure(face, line))
	}
	return a
}

// Layout fits the text into the area of a badge of the given size (badge units) that is left after padding.
// It walks down the font ladder, trying the text on one line and then, where the shape allows it, on two,
// and takes the first size that fits. If none fits, the smallest size is used.
func (e *Engine) Layout(text string, constraint Constraint, padding Padding, bounds Size, pixelRatio float64) *Layout {
	space := Size{
		Width:  (bounds.Width - padding.Left - padding.Right) * pixelRatio,
		Height: (bounds.Height - padding.Top - padding.Bottom) * pixelRatio,
	}
	constraint.Radius *= pixelRatio
	candidates := candidateLines(text, constraint)

	var best *arrangement
	var bestSize float64
	fits := false

	for i, fontSize := range e.ladder {
		fontPx := fontSize * pixelRatio
		face := e.newFace(fontPx)

		var bestScaleAtSize float64
		var bestAtSize *arrangement
		for _, lines := range candidates {
			a := e.arrange(face, fontPx, lines)
			scale := constraint.Scale(space, a.size())
			if scale >= 1 {
				best, bestSize, fits = a, fontSize, true
				break
			}
			if bestAtSize == nil || scale > bestScaleAtSize {
				bestAtSize, bestScaleAtSize = a, scale
			}
		}
		face.Close()

		if fits {
			break
		}

		if i == len(e.ladder)-1 {
			best, bestSize = bestAtSize, fontSize
		}
	}

	return e.position(best, bestSize, pixelRatio, constraint.VerticalAlign(), padding, space, fits)
}

func candidateLines(text string, constraint Constraint) [][]string {
	candidates := [][]string{{text}}
	if constraint.MaxLines() > 1 {
		first, second, ok := SplitBalanced(text)
		if ok {
			candidates = append(candidates, []string{first, second})
		}
	}
	return candidates
}

// widthSearchSteps bounds the bisection in FitWidth
const widthSearchSteps = 32

// FitWidth is the narrowest badge width, in badge units and between minWidth and maxWidth, at which Layout
// reaches the largest font size the text can have at maxWidth. The result is rounded up to a whole pixel.
// When the text does not fit at maxWidth even at the smallest size, maxWidth is returned.
func (e *Engine) FitWidth(text string, constraint Constraint, padding Padding, height, minWidth, maxWidth, pixelRatio float64) float64 {
	if maxWidth < minWidth {
		maxWidth = minWidth
	}

	constraint.Radius *= pixelRatio
	spaceAt := func(width float64) Size {
		return Size{
			Width:  (width - padding.Left - padding.Right) * pixelRatio,
			Height: (height - padding.Top - padding.Bottom) * pixelRatio,
		}
	}
	fitsAt := func(a *arrangement, width float64) bool {
		return constraint.Scale(spaceAt(width), a.size()) >= 1
	}

	candidates := candidateLines(text, constraint)

	for _, fontSize := range e.ladder {
		fontPx := fontSize * pixelRatio
		face := e.newFace(fontPx)

		width := math.Inf(1)
		for _, lines := range candidates {
			a := e.arrange(face, fontPx, lines)
			if !fitsAt(a, maxWidth) {
				continue
			}
			if fitsAt(a, minWidth) {
				width = minWidth
				break
			}

			// the usable area only grows with the width, so bisect between a width that fails and one that fits
			low, high := minWidth, maxWidth
			for i := 0; i < widthSearchSteps; i++ {
				mid := (low + high) / 2
				if fitsAt(a, mid) {
					high = mid
				} else {
					low = mid
				}
			}
			width = math.Min(width, high)
		}
		face.Close()

		if !math.IsInf(width, 1) {
			return math.Min(maxWidth, math.Ceil(width*pixelRatio)/pixelRatio)
		}
	}

	return maxWidth
}

func (e *Engine) position(a *arrangement, fontSize, pixelRatio float64, align VerticalAlign, padding Padding, space Size, fits bool) *Layout {
	left := padding.Left * pixelRatio
	top := padding.Top * pixelRatio
	centerX := left + space.Width/2

	blockHeight := a.size().Height
	blockTop := top
	if align == AlignMiddle {
		blockTop = top + (space.Height-blockHeight)/2
	}

	layout := &Layout{
		FontSize: fontSize,
		FontPx:   fontSize * pixelRatio,
		Fits:     fits,
	}

	y := blockTop
	for i, line := range a.lines {
		m := a.measurements[i]
		if i > 0 {
			y += a.gap
		}
		layout.Lines = append(layout.Lines, Line{
			Text:     line,
			X:        centerX - m.width/2,
			Baseline: y + m.ascent,
		})
		y += m.height()
	}

	return layout
}

// SplitBalanced breaks text into two lines of similar length, preferring a break at a space, '-' or '/'
// nearest the middle. Separating spaces are dropped; '-' and '/' stay at the end of the first line.
func SplitBalanced(text string) (string, string, bool) {
	runes := []rune(text)
	if len(runes) < 2 {
		return "", "", false
	}

	middle := float64(len(runes)) / 2
	bestIndex := -1
	bestDistance := math.Inf(1)
	for i, r := range runes {
		if r != ' ' && r != '-' && r != '/' {
			continue
		}
		breakAt := i
		if r != ' ' {
			breakAt = i + 1
		}
		if breakAt <= 0 || breakAt >= len(runes) {
			continue
		}
		distance := math.Abs(float64(breakAt) - middle)
		if distance < bestDistance {
			bestIndex, bestDistance = i, distance
		}
	}

	if bestIndex == -1 {
		breakAt := (len(runes) + 1) / 2
		return string(runes[:breakAt]), string(runes[breakAt:]), true
	}

	if runes[bestIndex] == ' ' {
		first := strings.TrimSpace(string(runes[:bestIndex]))
		second := strings.TrimSpace(string(runes[bestIndex+1:]))
		if first == "" || second == "" {
			return "", "", false
		}
		return first, second, true
	}

	return string(runes[:bestIndex+1]), string(runes[bestIndex+1:]), true
}
