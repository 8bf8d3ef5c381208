package signalGen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

//piApprox is the rounded pi the scenarios have always used to size their loops. Changing it changes sample counts
const piApprox = 3.14159

//ErrOutOfDomain is returned when an inverse trig step is asked for an argument outside [-1,1]
var ErrOutOfDomain = errors.New("argument outside of [-1,1]")

//Gate zeroes y unless |y| >= 0.8. The multiplier is min(floor(|y|+0.2),1) so surviving samples are unchanged
func Gate(y float64) float64 {
	return y * math.Min(math.Floor(math.Abs(y)+0.2), 1)
}

//GatedSine returns the gated and the undamped (x10) sine for index i at resolution res
func GatedSine(i int, res float64) (gated, scaled float64) {
	y := math.Sin(float64(i) / res)
	return Gate(y), y * 10
}

//SquareCorners returns the four corners of the square with half width r, starting top right and going clockwise
func SquareCorners(r float64) [4][2]float64 {
	return [4][2]float64{
		{1 * r, 1 * r},
		{1 * r, -1 * r},
		{-1 * r, -1 * r},
		{-1 * r, 1 * r},
	}
}

//Ramp is zero until x passes 2*(rank/channels) and rises with slope 1 afterwards
func Ramp(x float64, rank, channels int) float64 {
	threshold := 2.0 * (float64(rank) / float64(channels))
	if x > threshold {
		return x - threshold
	}
	return 0
}

//CompensateTextHeight shifts sin(t) down by textHeight, or up if shifting down would leave (-1,1]
func CompensateTextHeight(t, textHeight float64) float64 {
	if math.Sin(t)-textHeight > -1 {
		return math.Sin(t) - textHeight
	}
	return math.Sin(t) + textHeight
}

//InverseTrigStep feeds t0 through CompensateTextHeight and asin. It returns the intermediate y and the next t
func InverseTrigStep(t0, textHeight float64) (y, next float64, err error) {
	y = CompensateTextHeight(t0, textHeight)
	if y < -1 || y > 1 || math.IsNaN(y) {
		return y, 0, fmt.Errorf("asin(%v) : %w", y, ErrOutOfDomain)
	}
	return y, math.Asin(y), nil
}

//Combinations returns the first limit combinations of k elements of alphabet in lexicographic order. Each
//combination is joined into a single string. limit < 0 means all of them
func Combinations(alphabet []string, k, limit int) []string {
	result := make([]string, 0)
	if k <= 0 || k > len(alphabet) {
		return result
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for limit < 0 || len(result) < limit {
		word := ""
		for _, i := range idx {
			word += alphabet[i]
		}
		result = append(result, word)

		//advance the right most index that still has room
		pos := k - 1
		for pos >= 0 && idx[pos] == len(alphabet)-k+pos {
			pos--
		}
		if pos < 0 {
			break
		}
		idx[pos]++
		for j := pos + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return result
}

//GridLabels returns the label set of the grid scenario: the alphabet, the numbers 0 to 149 and the first 500
//three letter combinations
func GridLabels() []string {
	alphabet := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		alphabet = append(alphabet, string(c))
	}
	labels := make([]string, 0, 26+150+500)
	labels = append(labels, alphabet...)
	for i := 0; i < 150; i++ {
		labels = append(labels, strconv.Itoa(i))
	}
	labels = append(labels, Combinations(alphabet, 3, 500)...)
	return labels
}
