package signalGen

import (
	"hash/fnv"
	"math"
)

//GoldenRatioConjugate is added to the cycler angle on every step. Repeated addition modulo 1 yields well separated hues
const GoldenRatioConjugate = 0.618033988749895

//RGB holds colour components in [0,1]
type RGB struct {
	R, G, B float64
}

//HSVToRGB converts hue h in degrees and saturation/value in [0,1] to RGB using the sector based algorithm
func HSVToRGB(h, s, v float64) RGB {
	sector := h / 60.0
	hi := int(math.Floor(sector)) % 6
	if hi < 0 {
		hi += 6
	}
	f := sector - math.Floor(sector)
	p := v * (1.0 - s)
	q := v * (1.0 - (f * s))
	t := v * (1.0 - ((1.0 - f) * s))

	switch hi {
	case 0:
		return RGB{v, t, p}
	case 1:
		return RGB{q, v, p}
	case 2:
		return RGB{p, v, t}
	case 3:
		return RGB{p, q, v}
	case 4:
		return RGB{t, p, v}
	default:
		return RGB{v, p, q}
	}
}

//ColorCycler produces an endless sequence of visually distinct colours by stepping a hue angle by the golden ratio
//conjugate. The zero value is usable and starts at theta 0
type ColorCycler struct {
	theta      float64
	Saturation float64
	Value      float64
}

//NewColorCycler returns a cycler starting at seed (reduced into [0,1)) with saturation and value 0.9
func NewColorCycler(seed float64) *ColorCycler {
	c := &ColorCycler{
		Saturation: 0.9,
		Value:      0.9,
	}
	c.Reset(seed)
	return c
}

//Reset restarts the sequence at seed
func (c *ColorCycler) Reset(seed float64) {
	c.theta = unitFraction(seed)
}

//Theta returns the current hue angle in [0,1)
func (c *ColorCycler) Theta() float64 {
	return c.theta
}

//Next advances theta and returns the colour for the new angle
func (c *ColorCycler) Next() RGB {
	c.theta = unitFraction(c.theta + GoldenRatioConjugate)
	return HSVToRGB(c.theta*360.0, c.Saturation, c.Value)
}

//ColorForName maps name to a stable colour. Equal names always get the same hue
func ColorForName(name string, s, v float64) RGB {
	return HSVToRGB(360.0*nameAngle(name), s, v)
}

//nameAngle hashes name and keeps the fractional part of its leading digits
func nameAngle(name string) float64 {
	hasher := fnv.New64a()
	//never fails for hash.Hash
	_, _ = hasher.Write([]byte(name))
	ang := float64(hasher.Sum64())
	if ang == 0 {
		return 0
	}
	ang = ang / math.Pow(10, math.Floor(math.Log10(ang)))
	return unitFraction(ang)
}

//unitFraction reduces x into [0,1)
func unitFraction(x float64) float64 {
	x = math.Mod(x, 1)
	if x < 0 {
		x++
	}
	//x was a tiny negative number that rounded up
	if x >= 1 {
		x = 0
	}
	return x
}
