package signalGen

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gendata/testUtils"
)

func TestGate(t *testing.T) {
	const res = 10.0
	for i := 0; i < 1000; i++ {
		raw := math.Sin(float64(i) / res)
		gated, scaled := GatedSine(i, res)
		if gated != 0 && gated != raw {
			t.Fatalf("i=%v: gated value %v is neither 0 nor the raw sine %v", i, gated, raw)
		}
		if math.Abs(raw) < 0.79 && gated != 0 {
			t.Errorf("i=%v: |sin| = %v below threshold but gated value is %v", i, math.Abs(raw), gated)
		}
		if math.Abs(raw) > 0.8 && gated != raw {
			t.Errorf("i=%v: |sin| = %v above threshold but gated value is %v", i, math.Abs(raw), gated)
		}
		if scaled != raw*10 {
			t.Errorf("i=%v: scaled value %v, want %v", i, scaled, raw*10)
		}
	}

	for _, y := range []float64{0, 0.5, -0.5, 0.79} {
		if got := Gate(y); got != 0 {
			t.Errorf("Gate(%v) = %v, want 0", y, got)
		}
	}
	for _, y := range []float64{0.8, 0.9, -0.95, 1, -1} {
		if got := Gate(y); got != y {
			t.Errorf("Gate(%v) = %v, want %v", y, got, y)
		}
	}
}

func TestSquareCorners_Reflections(t *testing.T) {
	for _, r := range []float64{0.999, 0.5, 0.0526} {
		corners := SquareCorners(r)
		want := [4][2]float64{{r, r}, {r, -r}, {-r, -r}, {-r, r}}
		if corners != want {
			t.Errorf("SquareCorners(%v) = %v, want %v", r, corners, want)
		}
	}
}

func TestRamp(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		rank     int
		channels int
		want     float64
	}{
		{"first channel starts at zero", 0.5, 0, 10, 0.5},
		{"zero at origin", 0, 0, 10, 0},
		{"before threshold", 0.3, 2, 10, 0},
		{"exactly at threshold", 0.4, 2, 10, 0},
		{"after threshold", 1.0, 2, 10, 0.6},
		{"last channel", 1.98, 9, 10, 0.18},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Ramp(test.x, test.rank, test.channels); !testUtils.FloatEqUpTo(got, test.want, 1e-12) {
				t.Errorf("Ramp(%v,%v,%v) = %v, want %v", test.x, test.rank, test.channels, got, test.want)
			}
		})
	}
}

func TestInverseTrigStep(t *testing.T) {
	const textHeight = 0.05
	t0 := 0.0
	for i := 0; i < 100; i++ {
		y, next, err := InverseTrigStep(t0, textHeight)
		if err != nil {
			t.Fatalf("step %v: unexpected error %v", i, err)
		}
		if y < -1 || y > 1 {
			t.Fatalf("step %v: y = %v outside of [-1,1]", i, y)
		}
		if !testUtils.FloatEqUpTo(math.Sin(next), y, 1e-12) {
			t.Fatalf("step %v: sin(next) = %v, want %v", i, math.Sin(next), y)
		}
		t0 = next
	}

	//a text height this large pushes the argument out of the asin domain
	if _, _, err := InverseTrigStep(math.Pi/2, -0.5); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("expected ErrOutOfDomain, got %v", err)
	}
}

func TestCompensateTextHeight(t *testing.T) {
	if got := CompensateTextHeight(0, 0.05); !testUtils.FloatEqUpTo(got, -0.05, 1e-12) {
		t.Errorf("CompensateTextHeight(0) = %v, want -0.05", got)
	}
	//sin(-pi/2)-0.05 would be below -1, so the height is added instead
	if got := CompensateTextHeight(-math.Pi/2, 0.05); !testUtils.FloatEqUpTo(got, -0.95, 1e-12) {
		t.Errorf("CompensateTextHeight(-pi/2) = %v, want -0.95", got)
	}
}

func TestCombinations(t *testing.T) {
	got := Combinations([]string{"a", "b", "c", "d"}, 2, -1)
	want := []string{"ab", "ac", "ad", "bc", "bd", "cd"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("Combinations() = %v, want %v", got, want)
	}

	if got := Combinations([]string{"a", "b", "c", "d"}, 3, 2); strings.Join(got, " ") != "abc abd" {
		t.Errorf("limited Combinations() = %v", got)
	}
	if got := Combinations([]string{"a"}, 2, -1); len(got) != 0 {
		t.Errorf("k larger than alphabet should be empty, got %v", got)
	}
}

func TestGridLabels(t *testing.T) {
	labels := GridLabels()
	if len(labels) != 26+150+500 {
		t.Fatalf("got %v labels, want %v", len(labels), 26+150+500)
	}
	checks := map[int]string{
		0:   "a",
		25:  "z",
		26:  "0",
		175: "149",
		176: "abc",
		177: "abd",
		//300 combinations start with a
		475: "ayz",
		476: "bcd",
		675: "bnp",
	}
	for idx, want := range checks {
		if labels[idx] != want {
			t.Errorf("label %v = %q, want %q", idx, labels[idx], want)
		}
	}
}
