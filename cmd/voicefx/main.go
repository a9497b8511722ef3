// Command voicefx renders a WAV file through one or more voice presets.
//
// Usage:
//
//	voicefx -input file.wav [flags]
//
// Every preset writes file_<preset>.wav next to the input unless -output or
// an output_dir in the config file says otherwise.
//
// Examples:
//
//	voicefx -list
//	voicefx -input take.wav
//	voicefx -input take.wav -presets radio,cinematic
//	voicefx -input take.wav -presets studio_clean -output clean.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/cwbudde/algo-voicefx/dsp/pipeline"
	"github.com/cwbudde/algo-voicefx/dsp/preset"
	"github.com/cwbudde/algo-voicefx/internal/batch"
	"github.com/cwbudde/algo-voicefx/internal/config"
	"github.com/cwbudde/algo-voicefx/internal/fsutil"
	"github.com/cwbudde/algo-voicefx/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("voicefx", flag.ContinueOnError)
	fs.SetOutput(stderr)

	input := fs.String("input", "", "input WAV file")
	presets := fs.String("presets", "", "comma-separated preset names (default: all)")
	output := fs.String("output", "", "explicit output path (single preset only)")
	configPath := fs.String("config", "", "YAML configuration file")
	list := fs.Bool("list", false, "list available presets and exit")
	logDir := fs.String("log-dir", "", "directory for daily log files (overrides config)")
	workers := fs.Int("workers", 0, "concurrent renders (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: voicefx -input file.wav [flags]\n\n")
		fmt.Fprintf(stderr, "Renders a WAV file through voice presets.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  voicefx -list\n")
		fmt.Fprintf(stderr, "  voicefx -input take.wav -presets radio,cinematic\n")
		fmt.Fprintf(stderr, "  voicefx -input take.wav -presets studio_clean -output clean.wav\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "voicefx: %v\n", err)
		return 1
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-dir":
			cfg.LogDir = *logDir
			if cfg.LogDir == "" {
				cfg.RetentionDays = 0
			}
		case "workers":
			cfg.Workers = *workers
		}
	})

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "voicefx: %v\n", err)
		return 1
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "voicefx: %v\n", err)
		return 1
	}

	if *list {
		if err := printList(stdout, reg); err != nil {
			fmt.Fprintf(stderr, "voicefx: %v\n", err)
			return 1
		}

		return 0
	}

	if *input == "" {
		fs.Usage()
		return 2
	}

	if _, err := os.Stat(*input); err != nil {
		fmt.Fprintf(stderr, "voicefx: input file %q not found\n", *input)
		return 1
	}

	logger, closer, err := logging.New(logging.Options{
		Dir:    cfg.LogDir,
		Level:  cfg.LogLevel,
		Stderr: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "voicefx: %v\n", err)
		return 1
	}
	defer closer.Close()

	if cfg.LogDir != "" && cfg.RetentionDays > 0 {
		res, err := fsutil.Sweep(logger, cfg.LogDir, cfg.RetentionDays)
		if err == nil && res.Files+res.Dirs > 0 {
			logger.Info("retention sweep", "dir", cfg.LogDir, "files", res.Files, "dirs", res.Dirs, "failures", res.Failures)
		}
	}

	names := splitNames(*presets)
	if len(names) == 0 {
		names = reg.Names()
	}

	reqs, err := batch.Expand(*input, names, *output)
	if err != nil {
		fmt.Fprintf(stderr, "voicefx: %v\n", err)
		return 1
	}

	evalOpts := []pipeline.Option{
		pipeline.WithLibrary(reg.Library()),
		pipeline.WithLogger(logger),
	}
	if !cfg.ParallelBranches {
		evalOpts = append(evalOpts, pipeline.WithSequentialBranches())
	}

	driver := batch.NewDriver(reg,
		batch.WithEvaluator(pipeline.NewEvaluator(evalOpts...)),
		batch.WithLogger(logger),
		batch.WithWorkers(cfg.Workers),
		batch.WithBitDepth(cfg.BitDepth),
		batch.WithOutputDir(cfg.OutputDir),
		batch.WithProgress(func(done, total int, o batch.Outcome) {
			status := "ok"
			if !o.OK() {
				status = "failed"
			}

			logger.Info("progress", "done", done, "total", total, "preset", o.Request.Preset, "status", status)
		}),
	)

	logger.Info("voicefx starting", "input", *input, "presets", len(reqs), "workers", cfg.Workers)

	failed := 0

	for _, o := range driver.Run(ctx, reqs) {
		if o.OK() {
			fmt.Fprintf(stdout, "%s\t%s\n", o.Request.Preset, o.Output)
			continue
		}

		failed++
		fmt.Fprintf(stderr, "voicefx: %s: %v\n", o.Request.Preset, describe(o.Err))
	}

	if failed > 0 {
		logger.Warn("batch finished with failures", "failed", failed, "total", len(reqs))
		return 1
	}

	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

func loadRegistry(cfg *config.Config) (*preset.Registry, error) {
	if cfg.PresetsFile == "" {
		return preset.Default()
	}

	reg, err := preset.LoadFile(cfg.PresetsFile, nil)
	if err != nil {
		return nil, err
	}

	reg.Seal()

	return reg, nil
}

func splitNames(s string) []string {
	var names []string

	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}

	return names
}

// describe turns batch errors into one-line user messages.
func describe(err error) string {
	switch {
	case errors.Is(err, preset.ErrUnknownPreset):
		return "unknown preset (use -list to see available)"
	case errors.Is(err, batch.ErrMissingInput):
		return "input file not found"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return err.Error()
	}
}

func printList(w io.Writer, reg *preset.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Preset\tStages\tGraph\n------\t------\t-----\n"); err != nil {
		return err
	}

	for _, name := range reg.Names() {
		root, err := reg.Resolve(name)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\n", name, len(pipeline.Stages(root)), pipeline.Describe(root)); err != nil {
			return err
		}
	}

	return tw.Flush()
}
