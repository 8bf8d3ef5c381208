package tPlot

import (
	"fmt"

	"gendata/streamParser"
	"gonum.org/v1/plot/plotter"
)

//channelHistory is a ring buffer holding the latest points of a single channel
type channelHistory struct {
	points plotter.XYs
	//start is the index of the oldest point once the buffer is full
	start int
	//arrivals counts all points ever added, used as x coordinate for D1 points
	arrivals int
	stats    ChannelStats
}

//Collector gathers parsed points per channel and keeps at most maxPoints of them per channel, dropping the oldest
type Collector struct {
	maxPoints int
	order     []string
	channels  map[string]*channelHistory
}

//NewCollector creates a Collector that keeps up to maxPointsPerChannel points for every channel
func NewCollector(maxPointsPerChannel int) (*Collector, error) {
	if maxPointsPerChannel < 1 {
		return nil, fmt.Errorf("collector needs room for at least one point per channel, got %v", maxPointsPerChannel)
	}
	return &Collector{
		maxPoints: maxPointsPerChannel,
		order:     make([]string, 0),
		channels:  make(map[string]*channelHistory),
	}, nil
}

//Add stores p. D1 points are placed at (arrival index, value), D2 and D3 points at (x,y)
func (c *Collector) Add(p streamParser.Point) error {
	kind := p.Kind()
	if kind < streamParser.KindD1 || kind > streamParser.KindD3 {
		return fmt.Errorf("channel %v : unsupported point kind %v", p.Channel, kind)
	}

	h, ok := c.channels[p.Channel]
	if !ok {
		h = &channelHistory{points: make(plotter.XYs, 0)}
		c.channels[p.Channel] = h
		c.order = append(c.order, p.Channel)
	}

	xy := plotter.XY{X: float64(h.arrivals), Y: p.Values[0]}
	if kind != streamParser.KindD1 {
		xy = plotter.XY{X: p.Values[0], Y: p.Values[1]}
	}
	h.arrivals++
	h.stats.update(p.Values)

	if len(h.points) < c.maxPoints {
		h.points = append(h.points, xy)
		return nil
	}
	h.points[h.start] = xy
	h.start = (h.start + 1) % c.maxPoints
	return nil
}

//Channels returns the channel names in order of first appearance
func (c *Collector) Channels() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

//Points returns a copy of the retained points of channel, oldest first
func (c *Collector) Points(channel string) plotter.XYs {
	h, ok := c.channels[channel]
	if !ok {
		return nil
	}
	result := make(plotter.XYs, 0, len(h.points))
	result = append(result, h.points[h.start:]...)
	result = append(result, h.points[:h.start]...)
	return result
}

//Len returns the number of retained points over all channels
func (c *Collector) Len() int {
	total := 0
	for _, h := range c.channels {
		total += len(h.points)
	}
	return total
}

//Stats returns the statistics over all points ever added to channel, including dropped ones
func (c *Collector) Stats(channel string) (ChannelStats, bool) {
	h, ok := c.channels[channel]
	if !ok {
		return ChannelStats{}, false
	}
	return h.stats, true
}
