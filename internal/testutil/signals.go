// Package testutil provides deterministic audio fixtures and comparison
// helpers shared by package tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

// Sine returns a sine of freqHz at amplitude amp. Channel ch is offset by ch
// radians so channels are distinguishable.
func Sine(t testing.TB, channels, frames, sampleRate int, freqHz, amp float64) *buffer.Audio {
	t.Helper()

	a := newAudio(t, channels, frames, sampleRate)
	step := 2 * math.Pi * freqHz / float64(sampleRate)

	for ch := range channels {
		data := a.Channel(ch)
		for i := range data {
			data[i] = amp * math.Sin(step*float64(i)+float64(ch))
		}
	}

	return a
}

// Voice returns a speech-like signal: a 180 Hz fundamental plus a 1250 Hz
// formant partial under a 3 Hz amplitude envelope. Peak stays below 0.6.
func Voice(t testing.TB, channels, frames, sampleRate int) *buffer.Audio {
	t.Helper()

	a := newAudio(t, channels, frames, sampleRate)
	sr := float64(sampleRate)

	for ch := range channels {
		data := a.Channel(ch)
		for i := range data {
			ts := float64(i) / sr
			env := 0.5 + 0.5*math.Sin(2*math.Pi*3*ts)
			data[i] = 0.4 * env * (math.Sin(2*math.Pi*180*ts+float64(ch)) +
				0.5*math.Sin(2*math.Pi*1250*ts))
		}
	}

	return a
}

// Noise returns uniform white noise in [-amp, amp] from a fixed seed.
func Noise(t testing.TB, seed int64, channels, frames, sampleRate int, amp float64) *buffer.Audio {
	t.Helper()

	a := newAudio(t, channels, frames, sampleRate)
	rng := rand.New(rand.NewSource(seed))

	for ch := range channels {
		data := a.Channel(ch)
		for i := range data {
			data[i] = (rng.Float64()*2 - 1) * amp
		}
	}

	return a
}

// Impulse returns a buffer with a unit sample at pos on every channel.
func Impulse(t testing.TB, channels, frames, sampleRate, pos int) *buffer.Audio {
	t.Helper()

	a := newAudio(t, channels, frames, sampleRate)
	if pos >= 0 && pos < frames {
		for ch := range channels {
			a.Channel(ch)[pos] = 1
		}
	}

	return a
}

// Silence returns an all-zero buffer.
func Silence(t testing.TB, channels, frames, sampleRate int) *buffer.Audio {
	t.Helper()
	return newAudio(t, channels, frames, sampleRate)
}

func newAudio(t testing.TB, channels, frames, sampleRate int) *buffer.Audio {
	t.Helper()

	a, err := buffer.New(channels, frames, sampleRate)
	if err != nil {
		t.Fatalf("buffer.New(%d, %d, %d): %v", channels, frames, sampleRate, err)
	}

	return a
}
