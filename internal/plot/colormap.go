package plot

import "github.com/wcharczuk/go-chart/v2/drawing"

// Diverging colormaps used by the detector views. Anchors approximate the
// matplotlib bwr and seismic maps.

type colormap []drawing.Color

var (
	bwrMap = colormap{
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
	}
	seismicMap = colormap{
		{R: 0, G: 0, B: 77, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 128, G: 0, B: 0, A: 255},
	}
)

// at maps t in [0, 1] to a color by linear interpolation between anchors.
func (c colormap) at(t float64) drawing.Color {
	t = clamp01(t)
	if len(c) == 1 {
		return c[0]
	}
	pos := t * float64(len(c)-1)
	i := int(pos)
	if i >= len(c)-1 {
		return c[len(c)-1]
	}
	f := pos - float64(i)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + f*(float64(b)-float64(a)))
	}
	return drawing.Color{
		R: lerp(c[i].R, c[i+1].R),
		G: lerp(c[i].G, c[i+1].G),
		B: lerp(c[i].B, c[i+1].B),
		A: 255,
	}
}

// reversed flips the colormap direction.
func (c colormap) reversed() colormap {
	out := make(colormap, len(c))
	for i, col := range c {
		out[len(c)-1-i] = col
	}
	return out
}
