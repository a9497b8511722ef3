package buffer

import "testing"

func TestInterleaveRoundTrip(t *testing.T) {
	frames := []float64{1, -1, 2, -2, 3, -3}

	a, err := Deinterleave(frames, 2, 44100)
	if err != nil {
		t.Fatalf("Deinterleave: %v", err)
	}

	wantL := []float64{1, 2, 3}
	wantR := []float64{-1, -2, -3}
	for i := range wantL {
		if a.Channel(0)[i] != wantL[i] || a.Channel(1)[i] != wantR[i] {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)", i,
				a.Channel(0)[i], a.Channel(1)[i], wantL[i], wantR[i])
		}
	}

	back := Interleave(a)
	for i := range frames {
		if back[i] != frames[i] {
			t.Fatalf("Interleave()[%d] = %v, want %v", i, back[i], frames[i])
		}
	}
}

func TestDeinterleaveDropsPartialFrame(t *testing.T) {
	a, err := Deinterleave([]float64{1, 2, 3}, 2, 8000)
	if err != nil {
		t.Fatalf("Deinterleave: %v", err)
	}
	if a.NumFrames() != 1 {
		t.Fatalf("NumFrames() = %d, want 1", a.NumFrames())
	}
}

func TestMixdown(t *testing.T) {
	a, _ := FromChannels(8000, []float64{1, 0}, []float64{0, 1})
	m := Mixdown(a)
	if m.NumChannels() != 1 {
		t.Fatalf("NumChannels() = %d, want 1", m.NumChannels())
	}
	for i, v := range m.Channel(0) {
		if v != 0.5 {
			t.Fatalf("sample %d = %v, want 0.5", i, v)
		}
	}
}
