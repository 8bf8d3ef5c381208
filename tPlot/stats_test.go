package tPlot

import (
	"testing"

	"gendata/streamParser"
	"gendata/testUtils"
)

func TestCollector_Stats(t *testing.T) {
	c := mustCollector(t, 2)
	values := [][]float64{{1, 10}, {2, 20}, {3, 30}, {6, 40}}
	for _, v := range values {
		if err := c.Add(streamParser.Point{Channel: "a", Values: v}); err != nil {
			t.Fatalf("unexpected error : %v", err)
		}
	}

	stats, ok := c.Stats("a")
	if !ok {
		t.Fatalf("missing stats for channel a")
	}
	//dropped points still count
	if stats.Count() != 4 {
		t.Errorf("Count() = %v, want 4", stats.Count())
	}
	if got, want := stats.Mean(), []float64{3, 25}; !testUtils.FloatSliceEqUpTo(got, want, 1e-12) {
		t.Errorf("Mean() = %v, want %v", got, want)
	}
	if got, want := stats.Var(), []float64{3.5, 125}; !testUtils.FloatSliceEqUpTo(got, want, 1e-9) {
		t.Errorf("Var() = %v, want %v", got, want)
	}
	if _, ok := c.Stats("missing"); ok {
		t.Errorf("unknown channel should have no stats")
	}
}

func TestChannelStats_Merge(t *testing.T) {
	var a, b ChannelStats
	wantSums := make([]float64, 3)
	dRNGValues := testUtils.DRNGFloat64SliceInRange(300, 42, -1, 1)
	for i := 0; i < len(dRNGValues); i += 3 {
		point := dRNGValues[i : i+3]
		//b only sees two coordinates
		if i%2 == 0 {
			a.update(point)
		} else {
			point = point[:2]
			b.update(point)
		}
		for j, v := range point {
			wantSums[j] += v
		}
	}

	merged := a.Merge(b)
	if merged.Count() != 100 {
		t.Fatalf("merged count %v, want 100", merged.Count())
	}
	if !testUtils.FloatSliceEqUpTo(merged.sums, wantSums, 1e-9) {
		t.Errorf("merged sums %v, want %v", merged.sums, wantSums)
	}
	//merging must not modify the inputs
	if len(b.sums) != 2 {
		t.Errorf("b grew to %v coordinates", len(b.sums))
	}
}

func TestChannelStats_ConstantValuesHaveNoVariance(t *testing.T) {
	var s ChannelStats
	for i := 0; i < 1000; i++ {
		s.update([]float64{0.1})
	}
	if v := s.Var()[0]; v < 0 || v > 1e-12 {
		t.Errorf("Var() = %v, want 0", v)
	}
	var empty ChannelStats
	if len(empty.Mean()) != 0 || empty.Count() != 0 {
		t.Errorf("empty stats should have no coordinates")
	}
}
