package design

import (
	"math"
	"testing"
)

const sr = 48000.0

func TestFirstOrderHighpass(t *testing.T) {
	c := FirstOrderHighpass(80, sr)
	if c.IsZero() {
		t.Fatal("unexpected zero coefficients")
	}

	if db := c.MagnitudeDB(80, sr); math.Abs(db+3.0103) > 0.01 {
		t.Fatalf("magnitude at cutoff = %.4f dB, want -3.01", db)
	}
	if db := c.MagnitudeDB(10000, sr); math.Abs(db) > 0.1 {
		t.Fatalf("passband magnitude = %.4f dB, want ~0", db)
	}
	if db := c.MagnitudeDB(8, sr); db > -19 {
		t.Fatalf("one decade below cutoff = %.4f dB, want about -20", db)
	}
}

func TestFirstOrderLowpass(t *testing.T) {
	c := FirstOrderLowpass(3000, sr)

	if db := c.MagnitudeDB(3000, sr); math.Abs(db+3.0103) > 0.01 {
		t.Fatalf("magnitude at cutoff = %.4f dB, want -3.01", db)
	}
	if db := c.MagnitudeDB(50, sr); math.Abs(db) > 0.01 {
		t.Fatalf("passband magnitude = %.4f dB, want ~0", db)
	}
}

func TestPeak(t *testing.T) {
	tests := []struct {
		name   string
		gainDB float64
	}{
		{name: "boost", gainDB: 3},
		{name: "cut", gainDB: -6},
		{name: "flat", gainDB: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Peak(3000, tt.gainDB, 1.0, sr)
			if db := c.MagnitudeDB(3000, sr); math.Abs(db-tt.gainDB) > 1e-9 {
				t.Fatalf("centre gain = %.6f dB, want %.1f", db, tt.gainDB)
			}
			if db := c.MagnitudeDB(20, sr); math.Abs(db) > 0.01 {
				t.Fatalf("far-band gain = %.6f dB, want ~0", db)
			}
		})
	}
}

func TestUnrealisableRequestsReturnZero(t *testing.T) {
	if !FirstOrderHighpass(0, sr).IsZero() {
		t.Fatal("zero cutoff should yield zero coefficients")
	}
	if !FirstOrderLowpass(sr, sr).IsZero() {
		t.Fatal("cutoff above Nyquist should yield zero coefficients")
	}
	if !Peak(1000, 3, 1, 0).IsZero() {
		t.Fatal("zero sample rate should yield zero coefficients")
	}
}

func TestRBJRejectsNonPositiveQ(t *testing.T) {
	for _, q := range []float64{0, -3, math.Inf(1)} {
		if !Peak(1000, 6, q, sr).IsZero() {
			t.Fatalf("Peak q=%v: expected zero coefficients", q)
		}

		if !HighShelf(1000, 6, q, sr).IsZero() {
			t.Fatalf("HighShelf q=%v: expected zero coefficients", q)
		}

		if !Highpass(100, q, sr).IsZero() {
			t.Fatalf("Highpass q=%v: expected zero coefficients", q)
		}
	}
}
