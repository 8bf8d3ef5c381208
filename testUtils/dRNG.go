package testUtils

import "math/rand"

//DRNGFloat64SliceInRange returns a slice of length entries with pseudo random values from [min,max[.
//Calling with the same seed will yield the same sequence. Intended for property style tests over a fixed sample
func DRNGFloat64SliceInRange(length int, seed int64, min, max float64) []float64 {
	dRNG := rand.New(rand.NewSource(seed))
	buf := make([]float64, length)
	for i := range buf {
		buf[i] = min + dRNG.Float64()*(max-min)
	}
	return buf
}
