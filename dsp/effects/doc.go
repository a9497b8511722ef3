// Package effects provides the stateful effect kernels behind the voice
// primitives.
//
// Effects in this package:
//   - Compressor: log2-domain peak compressor with attack/release ballistics.
//   - Limiter: fast high-ratio compressor followed by a ceiling clip.
//   - Distortion: tanh waveshaper with input drive.
//   - Reverb: Freeverb-style comb/allpass network with stereo width and freeze.
//   - Delay: feedback delay with dry/wet mix.
//   - Chorus: LFO-modulated fractional delay with feedback and dry/wet mix.
//
// Every kernel processes one channel. Multi-channel callers create one
// instance per channel (Reverb additionally offers a stereo path). Kernels are
// not safe for concurrent use; a fresh instance per render keeps renders
// independent.
package effects
