//go:build fastmath

package effects

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// Approximate variants of compressor_math.go.

func levelLog2(x float64) float64 { return approx.FastLog(x) / math.Ln2 }

func gainExp2(x float64) float64 { return approx.FastExp(x * math.Ln2) }

func smoothingCoeff(x float64) float64 { return approx.FastExp(x) }
