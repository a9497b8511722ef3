// Package batch renders (input file, preset) requests to WAV files.
//
// Each request is independent: a missing input, an unknown preset or a codec
// failure is reported in that request's Outcome and never aborts the others.
// Requests run on a bounded worker pool and a decoded input is shared by all
// requests of one Run that name the same path.
package batch
