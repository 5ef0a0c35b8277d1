package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat"
)

func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the magnitude spectrum of data up to the Nyquist
// bin. The series is zero-padded to a power-of-two length, so step records
// of any length can be passed directly.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	padded := make([]float64, nextPow2(len(data)))
	copy(padded, data)

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantPeriod estimates the strongest oscillation period in data,
// sampled every dt seconds. The mean is removed first so a constant offset
// does not mask the peak. Returns 0 when the series is too short or has no
// oscillating content.
func DominantPeriod(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	kBest := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[kBest] {
			kBest = k
		}
	}
	if kBest == 0 || ps[kBest] == 0 {
		return 0
	}

	n := nextPow2(len(data))
	return float64(n) * dt / float64(kBest)
}

// nextPow2 returns the smallest power of two that is >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
