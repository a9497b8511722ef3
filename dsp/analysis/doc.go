// Package analysis summarises rendered audio: peak and RMS level, gated
// loudness, clipping and spectral centroid.
package analysis
