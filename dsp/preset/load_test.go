package preset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/pipeline"
	"github.com/cwbudde/algo-voicefx/dsp/primitive"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

var catalogue = []string{
	"studio_clean", "stage_host", "motivational", "inner_voice", "radio",
	"radio_voice", "cinematic", "megaphone", "ai_voice", "dream_voice",
	"game_npc", "capcut_pro_voice", "voice_speech",
}

func TestDefaultCatalogue(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	if !r.Sealed() {
		t.Fatal("default registry must be sealed")
	}

	if r.Len() != len(catalogue) {
		t.Fatalf("Len = %d, want %d (%v)", r.Len(), len(catalogue), r.Names())
	}

	for _, name := range catalogue {
		if !r.Has(name) {
			t.Fatalf("missing preset %q", name)
		}
	}

	again, _ := Default()
	if again != r {
		t.Fatal("Default built a second registry")
	}
}

func TestStudioCleanDefinition(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	root, err := r.Resolve("studio_clean")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := "[highpass(cutoff_frequency_hz=80) -> peak(cutoff_frequency_hz=3000, gain_db=3, q=1)" +
		" -> compressor(ratio=3, threshold_db=-22) -> gain(gain_db=2)]"
	if got := pipeline.Describe(root); got != want {
		t.Fatalf("studio_clean:\n got %s\nwant %s", got, want)
	}
}

func TestStudioCleanOnSilence(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	root, _ := r.Resolve("studio_clean")

	in, err := buffer.New(1, 16000, 16000)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}

	out, err := pipeline.NewEvaluator().Evaluate(context.Background(), root, in)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if out.NumChannels() != 1 || out.NumFrames() != 16000 || out.SampleRate() != 16000 {
		t.Fatalf("shape changed: %dch %d frames %d Hz", out.NumChannels(), out.NumFrames(), out.SampleRate())
	}

	for i, x := range out.Channel(0) {
		if x != 0 {
			t.Fatalf("sample %d = %v, want 0", i, x)
		}
	}
}

func TestEveryPresetRenders(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	ev := pipeline.NewEvaluator()

	for _, sr := range []int{16000, 44100} {
		for _, channels := range []int{1, 2} {
			in := testutil.Voice(t, channels, sr/4, sr)

			for _, name := range r.Names() {
				root, _ := r.Resolve(name)

				out, err := ev.Evaluate(context.Background(), root, in)
				if err != nil {
					t.Fatalf("%s @ %d Hz/%dch: %v", name, sr, channels, err)
				}

				if !out.SameShape(in) {
					t.Fatalf("%s: shape changed", name)
				}

				testutil.RequireFinite(t, out)
			}
		}
	}
}

func TestLoadGrammar(t *testing.T) {
	const src = `
presets:
  sends:
    - highpass: {cutoff_frequency_hz: 100}
    - mix:
        - - gain: {gain_db: 0}
        - - reverb:
          - gain: {gain_db: -12}
  Single-Stage:
    distortion: {drive_db: 10}
`

	r, err := Load(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if r.Sealed() {
		t.Fatal("Load must return an unsealed registry")
	}

	sends, err := r.Resolve("sends")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := "[highpass(cutoff_frequency_hz=100) -> mix{[reverb -> gain(gain_db=-12)] + gain(gain_db=0)}]"
	if got := pipeline.Describe(sends); got != want {
		t.Fatalf("sends:\n got %s\nwant %s", got, want)
	}

	single, err := r.Resolve("single_stage")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if _, ok := single.(*pipeline.Stage); !ok {
		t.Fatalf("single_stage is %T, want *pipeline.Stage", single)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"empty", "", ErrMalformed},
		{"unknown top-level key", "presets: {}\nextra: 1\n", ErrMalformed},
		{"presets not a map", "presets: [1, 2]\n", ErrMalformed},
		{"two-key node", "presets:\n  x: {gain: {}, delay: {}}\n", ErrMalformed},
		{"empty chain", "presets:\n  x: []\n", pipeline.ErrEmptyComposite},
		{"empty mix", "presets:\n  x:\n    - mix: []\n", pipeline.ErrEmptyComposite},
		{"mix not a list", "presets:\n  x:\n    - mix: {gain: {}}\n", ErrMalformed},
		{"unknown kind", "presets:\n  x:\n    - flanger: {}\n", primitive.ErrUnknownKind},
		{"unknown param", "presets:\n  x:\n    - gain: {volume: 3}\n", primitive.ErrUnknownParam},
		{"non-numeric param", "presets:\n  x:\n    - gain: {gain_db: loud}\n", ErrMalformed},
		{"scalar params", "presets:\n  x:\n    - gain: 3\n", ErrMalformed},
		{"compressor ratio below 1", "presets:\n  x:\n    - compressor: {ratio: 0.5}\n", primitive.ErrInvalidParam},
		{"compressor attack too long", "presets:\n  x:\n    - compressor: {attack_ms: 5000}\n", primitive.ErrInvalidParam},
		{"limiter release zero", "presets:\n  x:\n    - limiter: {release_ms: 0}\n", primitive.ErrInvalidParam},
		{"delay feedback above limit", "presets:\n  x:\n    - delay: {feedback: 1.5}\n", primitive.ErrInvalidParam},
		{"chorus depth above 1", "presets:\n  x:\n    - chorus: {depth: 2}\n", primitive.ErrInvalidParam},
		{"reverb width in mix", "presets:\n  x:\n    - mix:\n        - - reverb: {width: -1}\n", primitive.ErrInvalidParam},
		{"peak q negative", "presets:\n  x:\n    - peak: {cutoff_frequency_hz: 1000, q: -3}\n", primitive.ErrInvalidParam},
		{"highpass zero cutoff", "presets:\n  x:\n    - highpass: {cutoff_frequency_hz: 0}\n", primitive.ErrInvalidParam},
		{"duplicate after folding", "presets:\n  a-b: {gain: {}}\n  a_b: {gain: {}}\n", ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("presets:\n  quiet:\n    - gain: {gain_db: -6}\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if r.Names()[0] != "quiet" {
		t.Fatalf("Names = %v", r.Names())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want os.ErrNotExist", err)
	}
}
