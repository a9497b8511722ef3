// Package wavio reads and writes PCM WAV files as frame-major float64
// samples normalised to [-1, 1].
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

var (
	// ErrDecode is returned when a file cannot be read as PCM WAV.
	ErrDecode = errors.New("wavio: decode failed")
	// ErrEncode is returned when a WAV file cannot be written.
	ErrEncode = errors.New("wavio: encode failed")
)

// DefaultBitDepth is the encoder bit depth when none is configured.
const DefaultBitDepth = 16

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	// An extensible fmt chunk carries cbSize, valid bits and the channel
	// mask after the 16 base bytes; the SubFormat GUID starts at 24 and
	// opens with the format code.
	extensibleFmtSize   = 40
	extensibleSubFormat = 24
)

// SupportedBitDepth reports whether bits is an integer PCM depth this
// package can read and write.
func SupportedBitDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

// Decode reads the WAV file at path and returns its samples interleaved by
// frame (frame 0 channel 0, frame 0 channel 1, ...), the channel count and
// the sample rate.
func Decode(path string) (frames []float64, channels, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("%w: %s: not a valid WAV file", ErrDecode, path)
	}

	switch dec.WavAudioFormat {
	case formatPCM:
	case formatExtensible:
		sub, err := subFormat(f)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
		}

		if sub != formatPCM {
			return nil, 0, 0, fmt.Errorf("%w: %s: unsupported extensible sub-format %d", ErrDecode, path, sub)
		}

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
		}

		dec = wav.NewDecoder(f)
		if !dec.IsValidFile() {
			return nil, 0, 0, fmt.Errorf("%w: %s: not a valid WAV file", ErrDecode, path)
		}
	default:
		return nil, 0, 0, fmt.Errorf("%w: %s: unsupported audio format %d", ErrDecode, path, dec.WavAudioFormat)
	}

	bits := int(dec.BitDepth)
	if !SupportedBitDepth(bits) {
		return nil, 0, 0, fmt.Errorf("%w: %s: unsupported bit depth %d", ErrDecode, path, bits)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	channels = int(dec.NumChans)
	sampleRate = int(dec.SampleRate)

	if channels <= 0 || sampleRate <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: %s: %d channels at %d Hz", ErrDecode, path, channels, sampleRate)
	}

	frames = make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		frames[i] = toFloat(v, bits)
	}

	return frames, channels, sampleRate, nil
}

// Encode writes frame-major samples to path as integer PCM at bitDepth.
// Samples outside [-1, 1] are clipped. A partially written file is removed.
func Encode(path string, frames []float64, channels, sampleRate, bitDepth int) (err error) {
	if channels <= 0 || sampleRate <= 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrEncode, channels, sampleRate)
	}

	if !SupportedBitDepth(bitDepth) {
		return fmt.Errorf("%w: unsupported bit depth %d", ErrEncode, bitDepth)
	}

	if len(frames)%channels != 0 {
		return fmt.Errorf("%w: %d samples do not divide into %d channels", ErrEncode, len(frames), channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", ErrEncode, path, cerr)
		}

		if err != nil {
			_ = os.Remove(path)
		}
	}()

	data := make([]int, len(frames))
	for i, x := range frames {
		data[i] = fromFloat(x, bitDepth)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, formatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, path, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, path, err)
	}

	return nil
}

func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}

func toFloat(v, bits int) float64 {
	if bits == 8 {
		v -= 128
	}

	return float64(v) / fullScale(bits)
}

func fromFloat(x float64, bits int) int {
	if math.IsNaN(x) {
		x = 0
	}

	x = math.Max(-1, math.Min(1, x))

	scale := fullScale(bits)

	v := int(math.Round(x * scale))
	if hi := int(scale) - 1; v > hi {
		v = hi
	}

	if bits == 8 {
		v += 128
	}

	return v
}

// subFormat rescans r from the start and returns the format code of the
// extensible fmt chunk's SubFormat GUID.
func subFormat(r io.ReadSeeker) (uint16, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, err
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("fmt chunk: %w", err)
		}

		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		if ch.Size < extensibleFmtSize {
			return 0, fmt.Errorf("extensible fmt chunk is %d bytes", ch.Size)
		}

		body := make([]byte, ch.Size)
		if _, err := io.ReadFull(ch, body); err != nil {
			return 0, fmt.Errorf("fmt chunk: %w", err)
		}

		return binary.LittleEndian.Uint16(body[extensibleSubFormat:]), nil
	}
}
