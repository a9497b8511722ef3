package core

import (
	"math"
	"testing"
)

func TestDBToLinear(t *testing.T) {
	tests := []struct {
		db   float64
		want float64
	}{
		{0, 1},
		{20, 10},
		{-20, 0.1},
		{-6.020599913279624, 0.5},
		{math.Inf(-1), 0},
	}

	for _, tt := range tests {
		if got := DBToLinear(tt.db); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("DBToLinear(%v) = %v, want %v", tt.db, got, tt.want)
		}
	}

	if DBToLinear(0) != 1 {
		t.Fatal("unity gain must be exact")
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for _, db := range []float64{-96, -22, -6, 0, 2, 12} {
		if got := LinearToDB(DBToLinear(db)); math.Abs(got-db) > 1e-10 {
			t.Errorf("LinearToDB(DBToLinear(%v)) = %v", db, got)
		}
	}

	if got := LinearPowerToDB(0.5); math.Abs(got+3.0103) > 1e-4 {
		t.Errorf("LinearPowerToDB(0.5) = %v, want -3.0103", got)
	}
}

func TestLevelEdgeCases(t *testing.T) {
	if !math.IsInf(LinearToDB(0), -1) || !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("zero should be -Inf dB")
	}

	for _, x := range []float64{-1, math.NaN()} {
		if !math.IsNaN(LinearToDB(x)) || !math.IsNaN(LinearPowerToDB(x)) {
			t.Fatalf("level of %v should be NaN", x)
		}
	}
}

func TestIsFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Fatalf("IsFinite(%v) = true", v)
		}
	}

	if !IsFinite(-3.5) || !IsFinite(0) {
		t.Fatal("ordinary values reported as non-finite")
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 || FlushDenormals(-1e-35) != 0 {
		t.Fatal("tiny values should flush to zero")
	}

	if FlushDenormals(1e-3) != 1e-3 {
		t.Fatal("normal values should pass through")
	}
}
