// Package design computes biquad coefficients: first-order high/low-pass by
// the bilinear transform, RBJ cookbook peak, high-shelf and high-pass, and
// the K-weighting pair used for loudness.
//
// Designers return zero coefficients when the request is not realisable
// (cutoff outside (0, Nyquist), non-positive sample rate); callers check
// [biquad.Coefficients.IsZero].
package design
