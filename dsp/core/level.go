package core

import "math"

// Level conversions use the amplitude (20*log10) convention unless the name
// says Power. Zero maps to -Inf dB; negative inputs have no level and map to
// NaN.

// DBToLinear returns the amplitude factor for a gain of db decibels.
// A 0 dB gain is exactly 1 so that unity gain stages are sample-exact.
func DBToLinear(db float64) float64 {
	switch {
	case db == 0:
		return 1
	case math.IsInf(db, -1):
		return 0
	}

	return math.Pow(10, db/20)
}

// LinearToDB returns the level of an amplitude in dB.
func LinearToDB(amplitude float64) float64 {
	return level(amplitude, 20)
}

// LinearPowerToDB returns the level of a mean-square power in dB.
func LinearPowerToDB(power float64) float64 {
	return level(power, 10)
}

func level(x, scale float64) float64 {
	switch {
	case x < 0 || math.IsNaN(x):
		return math.NaN()
	case x == 0:
		return math.Inf(-1)
	}

	return scale * math.Log10(x)
}

// IsFinite reports whether x is an ordinary number.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FlushDenormals returns 0 for magnitudes below 1e-30.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < 1e-30 {
		return 0
	}

	return x
}
