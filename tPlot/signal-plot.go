//Package tPlot renders collected protocol points as png plots
package tPlot

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gendata/signalGen"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Style selects how the points of a channel are drawn
type Style int

const (
	//StyleScatter draws every point as a dot
	StyleScatter Style = iota
	//StyleLines connects consecutive points
	StyleLines
)

//ParseStyle maps "scatter" and "lines" to a Style
func ParseStyle(name string) (Style, error) {
	switch name {
	case "scatter":
		return StyleScatter, nil
	case "lines":
		return StyleLines, nil
	default:
		return StyleScatter, fmt.Errorf("unknown style %q, use scatter or lines", name)
	}
}

//maxLegendEntries caps the legend, the label grid alone has several hundred channels
const maxLegendEntries = 16

//channelSaturation and channelValue are used to derive the series colour from the channel name
const (
	channelSaturation = 0.8
	channelValue      = 1.0
)

//ChannelColor returns the colour used for channel in every plot
func ChannelColor(channel string) color.Color {
	return toColor(signalGen.ColorForName(channel, channelSaturation, channelValue))
}

func toColor(c signalGen.RGB) color.Color {
	component := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{R: component(c.R), G: component(c.G), B: component(c.B), A: 255}
}

//Plot creates a plot with one series per channel in c
func Plot(title string, c *Collector, style Style) (*plot.Plot, error) {
	channels := c.Channels()
	if len(channels) == 0 {
		return nil, fmt.Errorf("no points to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	grid := plotter.NewGrid()
	grid.Vertical.Color = colornames.Lightgray
	grid.Horizontal.Color = colornames.Lightgray
	p.Add(grid)

	for i, channel := range channels {
		points := c.Points(channel)
		var thumb plot.Thumbnailer
		switch style {
		case StyleLines:
			line, err := plotter.NewLine(points)
			if err != nil {
				return nil, fmt.Errorf("failed creating line for channel %v : %v", channel, err)
			}
			line.Color = ChannelColor(channel)
			p.Add(line)
			thumb = line
		default:
			scatter, err := plotter.NewScatter(points)
			if err != nil {
				return nil, fmt.Errorf("failed creating scatter for channel %v : %v", channel, err)
			}
			scatter.GlyphStyle.Color = ChannelColor(channel)
			scatter.GlyphStyle.Radius = vg.Points(1.5)
			p.Add(scatter)
			thumb = scatter
		}
		if i < maxLegendEntries {
			p.Legend.Add(channel, thumb)
		}
	}
	p.Legend.Top = true

	return p, nil
}

//PlotAndStore wraps Plot and writes the result as png to out
func PlotAndStore(title string, c *Collector, style Style, out io.Writer) error {
	p, err := Plot(title, c, style)
	if err != nil {
		return fmt.Errorf("failed to create plot :%v", err)
	}
	writerTo, err := p.WriterTo(800, 600, "png")
	if err != nil {
		return fmt.Errorf("failed to prepare plot for writing : %v", err)
	}
	if _, err := writerTo.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write plot : %v", err)
	}
	return nil
}
