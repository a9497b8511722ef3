package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-voicefx/dsp/analysis"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/pipeline"
	"github.com/cwbudde/algo-voicefx/dsp/preset"
	"github.com/cwbudde/algo-voicefx/internal/fsutil"
	"github.com/cwbudde/algo-voicefx/internal/observe"
	"github.com/cwbudde/algo-voicefx/internal/wavio"
)

// ProgressFunc is called once per finished request with the number of
// finished requests so far and the batch size. Calls are serialised.
type ProgressFunc func(done, total int, o Outcome)

// Driver renders batches of requests against a preset registry.
type Driver struct {
	reg       *preset.Registry
	eval      *pipeline.Evaluator
	logger    *slog.Logger
	metrics   *observe.Metrics
	workers   int
	bitDepth  int
	outputDir string
	progress  ProgressFunc
}

// Option configures a Driver.
type Option func(*Driver)

// WithEvaluator replaces the evaluator built from the registry's library.
func WithEvaluator(e *pipeline.Evaluator) Option {
	return func(d *Driver) { d.eval = e }
}

// WithLogger sets the logger for per-request reports.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithMetrics sets the metric instruments. The default is
// observe.DefaultMetrics.
func WithMetrics(m *observe.Metrics) Option {
	return func(d *Driver) { d.metrics = m }
}

// WithWorkers bounds the number of requests rendered at once. Values below 1
// select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(d *Driver) { d.workers = n }
}

// WithBitDepth sets the output PCM bit depth.
func WithBitDepth(bits int) Option {
	return func(d *Driver) { d.bitDepth = bits }
}

// WithOutputDir places derived output files in dir instead of next to the
// input. Explicit Request.Output paths are not affected.
func WithOutputDir(dir string) Option {
	return func(d *Driver) { d.outputDir = dir }
}

// WithProgress registers fn to observe finished requests.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Driver) { d.progress = fn }
}

// NewDriver creates a Driver resolving presets in reg.
func NewDriver(reg *preset.Registry, opts ...Option) *Driver {
	d := &Driver{
		reg:      reg,
		bitDepth: wavio.DefaultBitDepth,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}

	if d.metrics == nil {
		d.metrics = observe.DefaultMetrics()
	}

	if d.workers < 1 {
		d.workers = runtime.GOMAXPROCS(0)
	}

	if d.eval == nil {
		d.eval = pipeline.NewEvaluator(
			pipeline.WithLibrary(reg.Library()),
			pipeline.WithLogger(d.logger),
		)
	}

	return d
}

// OutputPath returns the path a request writes to.
func (d *Driver) OutputPath(req Request) string {
	if req.Output != "" {
		return req.Output
	}

	base := req.Input
	if d.outputDir != "" {
		base = filepath.Join(d.outputDir, filepath.Base(req.Input))
	}

	return fsutil.AddSuffix(base, "_"+preset.NormalizeName(req.Preset))
}

// Run renders every request and returns one Outcome per request, in request
// order. Failures are reported per Outcome. A request whose output path was
// already claimed by an earlier request fails with ErrDuplicateOutput.
// Cancelling ctx fails the requests that have not finished.
func (d *Driver) Run(ctx context.Context, reqs []Request) []Outcome {
	outcomes := make([]Outcome, len(reqs))
	cache := newInputCache(d.metrics)

	var (
		mu   sync.Mutex
		done int
	)

	var g errgroup.Group
	g.SetLimit(d.workers)

	claimed := make(map[string]bool, len(reqs))

	for i, req := range reqs {
		var dup error

		path := filepath.Clean(d.OutputPath(req))
		if claimed[path] {
			dup = fmt.Errorf("%w: %s", ErrDuplicateOutput, path)
		}

		claimed[path] = true

		g.Go(func() error {
			o := d.render(ctx, cache, req, dup)
			outcomes[i] = o

			mu.Lock()
			done++
			if d.progress != nil {
				d.progress(done, len(reqs), o)
			}
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	return outcomes
}

func (d *Driver) render(ctx context.Context, cache *inputCache, req Request, dup error) (o Outcome) {
	start := time.Now()
	name := preset.NormalizeName(req.Preset)
	o = Outcome{Request: req}

	untrack := d.metrics.TrackActive(ctx)
	defer untrack()

	defer func() {
		o.Duration = time.Since(start)

		status := observe.StatusOK
		if o.Err != nil {
			status = observe.StatusError
			d.logger.Error("render failed", "input", req.Input, "preset", name, "err", o.Err)
		}

		d.metrics.RecordRender(ctx, name, status, o.Duration, o.Report.Duration())
	}()

	if dup != nil {
		o.Err = dup
		return o
	}

	if err := ctx.Err(); err != nil {
		o.Err = err
		return o
	}

	in, err := cache.load(ctx, req.Input)
	if err != nil {
		o.Err = err
		return o
	}

	root, err := d.reg.Resolve(req.Preset)
	if err != nil {
		o.Err = err
		return o
	}

	out, err := d.eval.Evaluate(ctx, root, in)
	if err != nil {
		o.Err = fmt.Errorf("batch: preset %q: %w", name, err)
		return o
	}

	path := d.OutputPath(req)
	if err := wavio.Encode(path, buffer.Interleave(out), out.NumChannels(), out.SampleRate(), d.bitDepth); err != nil {
		o.Err = err
		return o
	}

	o.Output = path

	report, err := analysis.Analyze(out)
	if err != nil {
		d.logger.Warn("render analysis failed", "output", path, "err", err)
		return o
	}

	o.Report = report

	d.logger.Info("rendered",
		"input", req.Input,
		"preset", name,
		"output", path,
		"elapsed", time.Since(start),
		"report", report,
	)

	if report.Clipped() {
		d.logger.Warn("output clipped", "output", path, "samples", report.ClippedSamples)
	}

	return o
}
