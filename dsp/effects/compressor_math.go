//go:build !fastmath

package effects

import "math"

// levelLog2 maps a linear envelope level to the log2 domain.
func levelLog2(x float64) float64 { return math.Log2(x) }

// gainExp2 maps a log2-domain gain back to linear.
func gainExp2(x float64) float64 { return math.Exp2(x) }

// smoothingCoeff returns exp(x) for envelope time constants.
func smoothingCoeff(x float64) float64 { return math.Exp(x) }
