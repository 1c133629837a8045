package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT transforms a real series of any length.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// PowerSpectrum returns magnitudes for bins 0..n/2-1 of a series that has
// had its mean removed and been zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(padPow2(detrend(data)))
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantFrequency returns the strongest non-zero frequency in Hz of a
// series sampled every dt seconds, or 0 when there is none.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)
	n := 2 * len(ps)

	best, bin := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, bin = ps[i], i
		}
	}
	if bin == 0 || best < 1e-12 {
		return 0
	}
	return float64(bin) / (float64(n) * dt)
}

// SettlingTime returns the time after which the series stays within tol of
// its final value, or -1 for an empty series.
func SettlingTime(data []float64, dt, tol float64) float64 {
	if len(data) == 0 {
		return -1
	}
	final := data[len(data)-1]
	last := 0
	for i, v := range data {
		if math.Abs(v-final) > tol {
			last = i + 1
		}
	}
	return float64(last) * dt
}

func detrend(data []float64) []float64 {
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(max(len(data), 1))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}

func padPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n <<= 1
	}
	if n == len(data) {
		return data
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}
