// Package biquad runs second-order IIR sections, alone or in a [Cascade].
// Coefficient design lives in dsp/filter/design.
package biquad
