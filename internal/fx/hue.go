// Package fx holds presentation-only state: colors that drift with wall
// time and short particle effects. Nothing here feeds back into the
// simulation, so frame rate never changes gameplay.
package fx

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/boa/internal/core"
)

// HueCycle is a hue angle that advances continuously with frame time.
type HueCycle struct {
	hue        float64 // degrees in [0, 360)
	speed      float64 // degrees per second
	saturation float64
	value      float64
}

// NewHueCycle creates a cycle turning at speed degrees per second.
func NewHueCycle(speed float64) *HueCycle {
	return &HueCycle{
		speed:      speed,
		saturation: 0.75,
		value:      0.95,
	}
}

// Advance moves the hue forward by dt.
func (h *HueCycle) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	h.hue = WrapHue(h.hue + h.speed*dt.Seconds())
}

// Reset returns the hue to zero.
func (h *HueCycle) Reset() {
	h.hue = 0
}

// Hue returns the current angle in [0, 360).
func (h *HueCycle) Hue() float64 {
	return h.hue
}

// At returns the current angle shifted by offset degrees.
func (h *HueCycle) At(offset float64) float64 {
	return WrapHue(h.hue + offset)
}

// Color returns the cycle color shifted by offset degrees.
func (h *HueCycle) Color(offset float64) colorful.Color {
	return colorful.Hsv(h.At(offset), h.saturation, h.value)
}

// ANSI returns the cycle color shifted by offset as a palette code.
func (h *HueCycle) ANSI(offset float64) core.Color {
	return ToANSI256(h.Color(offset))
}

// WrapHue reduces any angle into [0, 360).
func WrapHue(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Pulse blends from a to b by t in [0, 1] and returns the palette code.
func Pulse(a, b colorful.Color, t float64) core.Color {
	return ToANSI256(a.BlendLab(b, core.ClampF(t, 0, 1)))
}

// xterm 256-color cube channel levels.
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// ToANSI256 maps a color to the nearest entry of the 6x6x6 color cube.
func ToANSI256(c colorful.Color) core.Color {
	r, g, b := c.Clamped().RGB255()
	return core.Color(16 + 36*cubeIndex(r) + 6*cubeIndex(g) + cubeIndex(b))
}

func cubeIndex(v uint8) int {
	best, bestDist := 0, 256
	for i, level := range cubeLevels {
		d := int(v) - level
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
