package signalGen

import (
	"fmt"
	"strconv"
)

//Bars emits three fixed 3D points on channel Bar
func Bars(sink Sink, _ Options) error {
	points := []DataPoint{
		NewDataPoint("Bar", -0.5, -0.5, 0.2),
		NewDataPoint("Bar", 0.0, 0.5, 1.5),
		NewDataPoint("Bar", 0.5, -0.25, 1.0),
	}
	for _, p := range points {
		if err := sink.Emit(p); err != nil {
			return err
		}
	}
	return nil
}

//GatedSineWave emits five periods of a gated sine on channel d and the scaled raw sine on channel e
func GatedSineWave(sink Sink, _ Options) error {
	const res = 10.0
	periods := 5.0
	samples := int(periods * 2 * piApprox * res)
	for i := 0; i < samples; i++ {
		gated, scaled := GatedSine(i, res)
		if err := sink.Emit(NewDataPoint("d", float64(i), gated)); err != nil {
			return err
		}
		if err := sink.Emit(NewDataPoint("e", float64(i), scaled)); err != nil {
			return err
		}
	}
	return nil
}

//RectangleDivs is the number of concentric squares drawn by NestedRectangles
const RectangleDivs = 64/4 + 3

//NestedRectangles emits RectangleDivs shrinking squares on the channels A and B
func NestedRectangles(sink Sink, _ Options) error {
	r := 0.999
	step := r / RectangleDivs
	for i := 0; i < RectangleDivs; i++ {
		for _, channel := range []string{"A", "B"} {
			for _, corner := range SquareCorners(r) {
				if err := sink.Emit(NewDataPoint(channel, corner[0], corner[1])); err != nil {
					return err
				}
			}
		}
		r -= step
	}
	return nil
}

//RampChannels are the channels of PiecewiseRamps, in rank order
const RampChannels = "abcdefghij"

//PiecewiseRamps emits one ramp per channel that starts later the higher the channel ranks. It opens every
//channel with (0,-2) and closes it with the largest x and y that were emitted
func PiecewiseRamps(sink Sink, _ Options) error {
	const divs = 100
	const step = 2.0 / divs
	channels := len(RampChannels)
	maxX, maxY := 0.0, 0.0

	for _, c := range RampChannels {
		if err := sink.Emit(NewDataPoint(string(c), 0, -2)); err != nil {
			return err
		}
	}
	for i := 0; i < divs; i++ {
		x := float64(i) * step
		for rank, c := range RampChannels {
			y := Ramp(x, rank, channels)
			if err := sink.Emit(NewDataPoint(string(c), x, y)); err != nil {
				return err
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	for _, c := range RampChannels {
		if err := sink.Emit(NewDataPoint(string(c), maxX, maxY)); err != nil {
			return err
		}
	}
	return nil
}

//InverseTrigFeedback emits (t, t0) on channel rads where t0 is repeatedly pushed through
//asin(CompensateTextHeight(t0)). The intermediate value is written as a raw line
func InverseTrigFeedback(sink Sink, _ Options) error {
	const divs = 100
	const textHeight = 0.05
	step := 2 * piApprox / float64(divs)

	t0 := 0.0
	for i := 0; i < divs; i++ {
		t := step * float64(i)
		if err := sink.Emit(NewDataPoint("rads", t, t0)); err != nil {
			return err
		}
		y, next, err := InverseTrigStep(t0, textHeight)
		if err != nil {
			return fmt.Errorf("step %v : %w", i, err)
		}
		if err := sink.Passthrough(strconv.FormatFloat(y, 'g', -1, 64)); err != nil {
			return err
		}
		t0 = next
	}
	return nil
}

//GridCells is the number of cells per grid row of LabelGrid
const GridCells = 26

//LabelGrid places every label of GridLabels in its own cell of a grid spanning [-1,1]² and emits one point per label
func LabelGrid(sink Sink, _ Options) error {
	step := 2 / float64(GridCells)
	origin := -1 + step/2
	cp, cpy := origin, origin
	for _, label := range GridLabels() {
		if err := sink.Emit(NewDataPoint(label, cp, cpy, 30)); err != nil {
			return err
		}
		cp += step
		if cp > 1 {
			cpy += step
			cp = origin
		}
	}
	return nil
}

//Colors emits opts.Count colours of a ColorCycler seeded with opts.Seed on channel rgb. Count 0 never stops
func Colors(sink Sink, opts Options) error {
	cycler := NewColorCycler(opts.Seed)
	for i := 0; opts.Count <= 0 || i < opts.Count; i++ {
		c := cycler.Next()
		if err := sink.Emit(NewDataPoint("rgb", c.R, c.G, c.B)); err != nil {
			return err
		}
	}
	return nil
}
