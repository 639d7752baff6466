package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Curve maps linear progress in [0,1] to eased progress. Curves always
// return exactly 0 at t<=0 and 1 at t>=1, but may overshoot in between.
type Curve interface {
	At(t float64) float64
}

// CurveFunc adapts a plain function to Curve.
type CurveFunc func(t float64) float64

func (f CurveFunc) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return f(t)
}

var (
	Linear    Curve = CurveFunc(func(t float64) float64 { return t })
	EaseIn    Curve = CurveFunc(func(t float64) float64 { return t * t * t })
	EaseInOut Curve = CurveFunc(func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	})
)

const springSamples = 120

// SpringCurve is an under-damped spring sampled over one unit of time.
// Frequency is the angular frequency per unit; damping below 1 overshoots.
type SpringCurve struct {
	table [springSamples + 1]float64
}

// NewSpringCurve precomputes the spring response from 0 to 1.
func NewSpringCurve(frequency, damping float64) *SpringCurve {
	s := harmonica.NewSpring(1.0/springSamples, frequency, damping)
	c := &SpringCurve{}
	var pos, vel float64
	for i := 1; i <= springSamples; i++ {
		pos, vel = s.Update(pos, vel, 1)
		c.table[i] = pos
	}
	return c
}

func (c *SpringCurve) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	f := t * springSamples
	i := int(f)
	frac := f - float64(i)
	return c.table[i] + (c.table[i+1]-c.table[i])*frac
}

// Peak returns the largest sampled value, which exceeds 1 when the
// spring overshoots.
func (c *SpringCurve) Peak() float64 {
	peak := 0.0
	for _, v := range c.table {
		if v > peak {
			peak = v
		}
	}
	return peak
}
