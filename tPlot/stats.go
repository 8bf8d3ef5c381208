package tPlot

import (
	"fmt"
	"math"
	"strings"
)

//ChannelStats accumulates point wise sums over all points of a channel. Index i of the slices refers to the i-th
//value of a point
type ChannelStats struct {
	count         float64
	sums          []float64
	sumsOfSquares []float64
}

//update adds values to the running sums, growing them if values carries more coordinates than seen so far
func (s *ChannelStats) update(values []float64) {
	for len(s.sums) < len(values) {
		s.sums = append(s.sums, 0)
		s.sumsOfSquares = append(s.sumsOfSquares, 0)
	}
	for i, v := range values {
		s.sums[i] += v
		s.sumsOfSquares[i] += math.Pow(v, 2)
	}
	s.count++
}

//Count returns the number of points that went into s
func (s ChannelStats) Count() int {
	return int(s.count)
}

//Mean returns the mean of every coordinate
func (s ChannelStats) Mean() []float64 {
	means := make([]float64, len(s.sums))
	if s.count == 0 {
		return means
	}
	for i := range s.sums {
		means[i] = s.sums[i] / s.count
	}
	return means
}

//Var returns the population variance of every coordinate
func (s ChannelStats) Var() []float64 {
	vars := make([]float64, len(s.sums))
	if s.count == 0 {
		return vars
	}
	means := s.Mean()
	for i := range s.sumsOfSquares {
		//rounding may push the difference slightly below zero for constant values
		vars[i] = math.Max(0, s.sumsOfSquares[i]/s.count-math.Pow(means[i], 2))
	}
	return vars
}

//Merge returns the combined statistics of s and other
func (s ChannelStats) Merge(other ChannelStats) ChannelStats {
	dims := len(s.sums)
	if len(other.sums) > dims {
		dims = len(other.sums)
	}
	merged := ChannelStats{
		count:         s.count + other.count,
		sums:          make([]float64, dims),
		sumsOfSquares: make([]float64, dims),
	}
	for _, part := range []ChannelStats{s, other} {
		for i := range part.sums {
			merged.sums[i] += part.sums[i]
			merged.sumsOfSquares[i] += part.sumsOfSquares[i]
		}
	}
	return merged
}

func (s ChannelStats) String() string {
	means, vars := s.Mean(), s.Var()
	parts := make([]string, len(means))
	for i := range means {
		parts[i] = fmt.Sprintf("v%v mean %.4g var %.4g", i, means[i], vars[i])
	}
	return fmt.Sprintf("%v points, %v", s.Count(), strings.Join(parts, ", "))
}
