package biquad

// Cascade runs sections in series.
type Cascade []*Section

// NewCascade builds a cascade from coefficient sets in processing order.
// Zero coefficient sets are skipped.
func NewCascade(coeffs ...Coefficients) Cascade {
	c := make(Cascade, 0, len(coeffs))

	for _, co := range coeffs {
		if !co.IsZero() {
			c = append(c, NewSection(co))
		}
	}

	return c
}

// ProcessBlock filters buf in place through every section.
func (c Cascade) ProcessBlock(buf []float64) {
	for _, s := range c {
		s.ProcessBlock(buf)
	}
}

// MagnitudeDB returns the summed magnitude response in dB.
func (c Cascade) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := 0.0
	for _, s := range c {
		db += s.c.MagnitudeDB(freqHz, sampleRate)
	}

	return db
}

// Reset clears every section.
func (c Cascade) Reset() {
	for _, s := range c {
		s.Reset()
	}
}
