package frame_charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette/brewer"
)

// SeriesColors returns n colors from the ColorBrewer Set1 qualitative palette,
// repeating once the palette is exhausted.
func SeriesColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	// brewer palettes have between 3 and 9 entries for Set1
	size := n
	if size < 3 {
		size = 3
	}
	if size > 9 {
		size = 9
	}

	colors := make([]color.Color, n)
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", size)
	if err != nil {
		for i := range colors {
			colors[i] = color.Gray{Y: uint8(60 + (i*40)%160)}
		}
		return colors
	}
	base := p.Colors()
	for i := range colors {
		colors[i] = base[i%len(base)]
	}
	return colors
}

// NiceTicks returns evenly spaced tick values from 0 up to at least max,
// using a step of 1, 2 or 5 times a power of ten and roughly target ticks.
func NiceTicks(max float64, target int) []float64 {
	return NiceRange(0, max, target)
}

// NiceRange is NiceTicks for a range that may reach below zero. The ticks
// always include 0 and cover [low, high].
func NiceRange(low, high float64, target int) []float64 {
	if target < 1 {
		target = 1
	}
	if low > 0 || math.IsNaN(low) || math.IsInf(low, 0) {
		low = 0
	}
	if high < 0 || math.IsNaN(high) || math.IsInf(high, 0) {
		high = 0
	}
	if high-low <= 0 {
		return []float64{0, 1}
	}

	step := niceStep((high - low) / float64(target))
	bottom := math.Floor(low/step) * step
	top := math.Ceil(high/step) * step

	count := int(math.Round((top-bottom)/step)) + 1
	ticks := make([]float64, count)
	for i := range ticks {
		// round away float noise such as 0.30000000000000004
		ticks[i] = roundTo(bottom+float64(i)*step, step)
	}
	return ticks
}

func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base

	switch {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

func roundTo(v, step float64) float64 {
	digits := math.Max(0, -math.Floor(math.Log10(step))+1)
	scale := math.Pow(10, digits)
	return math.Round(v*scale) / scale
}
