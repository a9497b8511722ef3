// Package core holds the level conversions and finiteness checks shared by
// the DSP packages.
package core
