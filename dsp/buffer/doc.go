// Package buffer provides the multi-channel audio buffer that flows through
// a processing pipeline.
//
// An [Audio] holds channel-major samples (channels × frames) together with
// its sample rate. Codecs usually speak frame-major (interleaved) layout;
// [Interleave] and [Deinterleave] convert between the two at I/O boundaries.
// Block arithmetic is backed by algo-vecmath so summing and scaling whole
// channels uses the SIMD kernels when the CPU supports them.
package buffer
