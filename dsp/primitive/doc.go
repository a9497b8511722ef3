// Package primitive defines the DSP primitive descriptors used as pipeline
// leaves and the library that maps each primitive kind to its implementation.
//
// A Descriptor is a Kind plus named numeric parameters. Parameter names and
// defaults follow the conventional voice-effect vocabulary (gain_db,
// cutoff_frequency_hz, threshold_db, ...). Unset parameters take the kind's
// documented default.
//
// A Library maps kinds to Func implementations. DefaultLibrary returns a
// library covering every Kind, backed by dsp/effects and dsp/filter.
package primitive
