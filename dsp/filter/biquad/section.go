package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients are the normalised (a0 = 1) coefficients of one second-order
// section:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// IsZero reports whether every coefficient is zero. Designers return the zero
// value when a request cannot be realised at the given sample rate.
func (c Coefficients) IsZero() bool {
	return c == Coefficients{}
}

// Response evaluates H at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeDB returns |H(freqHz)| in dB.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Section runs one set of coefficients in transposed direct form II.
type Section struct {
	c      Coefficients
	s1, s2 float64
}

// NewSection returns a section with cleared state.
func NewSection(c Coefficients) *Section {
	return &Section{c: c}
}

// Coefficients returns the section's coefficients.
func (s *Section) Coefficients() Coefficients { return s.c }

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.c.B0*x + s.s1
	s.s1 = s.c.B1*x - s.c.A1*y + s.s2
	s.s2 = s.c.B2*x - s.c.A2*y

	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.c
	s1, s2 := s.s1, s.s2

	for i, x := range buf {
		y := c.B0*x + s1
		s1 = c.B1*x - c.A1*y + s2
		s2 = c.B2*x - c.A2*y
		buf[i] = y
	}

	s.s1, s.s2 = s1, s2
}

// Reset clears the filter state.
func (s *Section) Reset() {
	s.s1, s.s2 = 0, 0
}

// State returns the two state registers.
func (s *Section) State() [2]float64 {
	return [2]float64{s.s1, s.s2}
}
