package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/primitive"
)

// Evaluator executes pipeline graphs. It holds no per-render state and is
// safe for concurrent use.
type Evaluator struct {
	lib        *primitive.Library
	sequential bool
	logger     *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLibrary sets the primitive library used to apply stages.
func WithLibrary(lib *primitive.Library) Option {
	return func(e *Evaluator) { e.lib = lib }
}

// WithSequentialBranches evaluates MixBus branches one after another instead
// of concurrently.
func WithSequentialBranches() Option {
	return func(e *Evaluator) { e.sequential = true }
}

// WithLogger sets the logger for per-stage debug records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// NewEvaluator returns an evaluator backed by primitive.DefaultLibrary unless
// WithLibrary is given.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}

	if e.lib == nil {
		e.lib = primitive.DefaultLibrary()
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Library returns the evaluator's primitive library.
func (e *Evaluator) Library() *primitive.Library { return e.lib }

// Evaluate runs n against in and returns a new buffer with the same channel
// count and sample rate. in is never modified.
func (e *Evaluator) Evaluate(ctx context.Context, n Node, in *buffer.Audio) (*buffer.Audio, error) {
	if n == nil {
		return nil, errNilNode
	}

	if in == nil {
		return nil, errors.New("pipeline: nil input")
	}

	out, err := e.eval(ctx, n, in)
	if err != nil {
		return nil, err
	}

	if out == in {
		out = in.Clone()
	}

	return out, nil
}

func (e *Evaluator) eval(ctx context.Context, n Node, in *buffer.Audio) (*buffer.Audio, error) {
	switch v := n.(type) {
	case *Stage:
		return e.evalStage(v, in)
	case *Chain:
		return e.evalChain(ctx, v, in)
	case *MixBus:
		return e.evalMix(ctx, v, in)
	default:
		return nil, fmt.Errorf("pipeline: unknown node type %T", n)
	}
}

func (e *Evaluator) evalStage(s *Stage, in *buffer.Audio) (*buffer.Audio, error) {
	kind := s.desc.Kind()

	fn := e.lib.Lookup(kind)
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPrimitive, kind)
	}

	out, err := fn(in.Clone(), s.desc)
	if err != nil {
		return nil, fmt.Errorf("pipeline: stage %s: %w", s.repr, err)
	}

	if out == nil {
		return nil, fmt.Errorf("pipeline: stage %s returned no audio", s.repr)
	}

	if out.NumChannels() != in.NumChannels() {
		return nil, fmt.Errorf("%w: stage %s turned %d channels into %d",
			ErrChannelMismatch, s.repr, in.NumChannels(), out.NumChannels())
	}

	if out.SampleRate() != in.SampleRate() {
		return nil, fmt.Errorf("pipeline: stage %s changed sample rate %d -> %d",
			s.repr, in.SampleRate(), out.SampleRate())
	}

	e.logger.Debug("stage applied", "stage", s.repr, "frames", out.NumFrames())

	return out, nil
}

func (e *Evaluator) evalChain(ctx context.Context, c *Chain, in *buffer.Audio) (*buffer.Audio, error) {
	cur := in

	for _, child := range c.children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, err := e.eval(ctx, child, cur)
		if err != nil {
			return nil, err
		}

		cur = next
	}

	return cur, nil
}

func (e *Evaluator) evalMix(ctx context.Context, m *MixBus, in *buffer.Audio) (*buffer.Audio, error) {
	outs := make([]*buffer.Audio, len(m.branches))

	if e.sequential || len(m.branches) == 1 {
		for i, b := range m.branches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			out, err := e.eval(ctx, b, in)
			if err != nil {
				return nil, err
			}

			outs[i] = out
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)

		for i, b := range m.branches {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				out, err := e.eval(gctx, b, in)
				if err != nil {
					return err
				}

				outs[i] = out

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return sum(outs, in)
}

// sum adds outs in canonical branch order into a buffer the caller owns.
func sum(outs []*buffer.Audio, in *buffer.Audio) (*buffer.Audio, error) {
	acc := outs[0]
	if acc == in {
		acc = in.Clone()
	}

	for _, o := range outs[1:] {
		if err := acc.Accumulate(o); err != nil {
			return nil, fmt.Errorf("pipeline: mix: %w", err)
		}
	}

	return acc, nil
}
