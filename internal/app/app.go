// Package app wires configuration, logging, the link reader and filter, the
// directory resolver and the batch runner into one run, and maps the outcome
// to a process exit code. It never exits the process itself.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/ytget/ig-downloader/internal/batch"
	"github.com/ytget/ig-downloader/internal/config"
	"github.com/ytget/ig-downloader/internal/download"
	"github.com/ytget/ig-downloader/internal/links"
	"github.com/ytget/ig-downloader/internal/logging"
	"github.com/ytget/ig-downloader/internal/metrics"
	"github.com/ytget/ig-downloader/internal/platform"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// DefaultName is the program name shown in usage output
const DefaultName = "ig-downloader"

// Options holds the process environment of a run
type Options struct {
	Name    string
	Version string
	Stdout  io.Writer
	Stderr  io.Writer

	// Fs is used to read the input file and resolve the download directory.
	// Defaults to the OS filesystem.
	Fs afero.Fs

	// Logger replaces the file and console logger when set
	Logger *zap.Logger

	// Downloader replaces the external tool adapter when set
	Downloader download.Downloader

	// Pause replaces the wait between downloads when set
	Pause batch.PauseFunc
}

func (o *Options) setDefaults() {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Version == "" {
		o.Version = "dev"
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
}

// Run executes one batch and returns the process exit code
func Run(ctx context.Context, args []string, opts Options) int {
	opts.setDefaults()

	cfg, err := config.Load(opts.Name, args, opts.Stderr)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintf(opts.Stderr, "%s: %v\n", opts.Name, err)
		return ExitUsage
	}

	if cfg.ShowVersion {
		fmt.Fprintf(opts.Stdout, "%s %s\n", opts.Name, opts.Version)
		return ExitOK
	}

	logger := opts.Logger
	if logger == nil {
		l, closeFn, err := logging.New(logging.Options{
			FilePath: logging.DefaultLogFile,
			Console:  opts.Stdout,
		})
		if err != nil {
			fmt.Fprintf(opts.Stderr, "%s: %v\n", opts.Name, err)
			return ExitFailure
		}
		defer closeFn()
		logger = l
	}

	r := &run{cfg: cfg, opts: opts, logger: logger, metrics: metrics.New()}
	code := r.execute(ctx)
	r.writeMetrics()
	return code
}

type run struct {
	cfg     *config.Config
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func (r *run) execute(ctx context.Context) int {
	runID := newRunID()
	r.logger.Info(fmt.Sprintf("Starting %s %s", r.opts.Name, r.opts.Version),
		zap.String("run_id", runID),
		zap.String("tool", r.cfg.Tool))

	downloadDir, created, err := platform.ResolveDirectory(r.opts.Fs, r.cfg.Directory)
	if err != nil {
		r.logger.Error(err.Error())
		return ExitFailure
	}
	if created {
		r.logger.Info(fmt.Sprintf("Created download directory: %s", downloadDir))
	}

	batchLinks, err := links.NewReader(r.opts.Fs).Read(links.DefaultInputFile)
	if err != nil {
		r.logReadError(err)
		return ExitFailure
	}
	r.metrics.LinksRead(len(batchLinks))
	r.logger.Info(fmt.Sprintf("Found %d links to process", len(batchLinks)))

	posts, dropped := links.FilterPosts(batchLinks)
	r.metrics.LinksFiltered(len(posts), dropped)
	r.logger.Info(fmt.Sprintf("Found %d post links (%d other links skipped)", len(posts), dropped))
	if len(posts) == 0 {
		r.logger.Warn(fmt.Sprintf("No post links found in %s", links.DefaultInputFile))
		return ExitOK
	}

	r.logger.Info(fmt.Sprintf("Using download directory: %s", downloadDir))

	downloader := r.opts.Downloader
	if downloader == nil {
		downloader = download.NewService(r.cfg.Tool, r.cfg.BaseURL, r.logger)
	}

	runner := batch.NewRunner(downloader,
		batch.WithDelay(r.cfg.DelayDuration()),
		batch.WithPauseFunc(r.opts.Pause),
		batch.WithLogger(r.logger),
		batch.WithMetrics(r.metrics),
	)
	summary := runner.Run(ctx, posts, downloadDir)
	if summary.Failed > 0 {
		r.logger.Warn(fmt.Sprintf("%d of %d downloads failed", summary.Failed, summary.Total),
			zap.String("run_id", runID))
	}

	return ExitOK
}

func (r *run) logReadError(err error) {
	var inputErr *links.InputError
	switch {
	case errors.Is(err, fs.ErrNotExist) && errors.As(err, &inputErr):
		r.logger.Error(fmt.Sprintf("Could not find file %s", inputErr.Path))
	default:
		r.logger.Error(fmt.Sprintf("Error reading file: %v", err))
	}
}

func (r *run) writeMetrics() {
	if r.cfg.MetricsFile == "" {
		return
	}
	if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
		r.logger.Warn("Failed to write metrics file",
			zap.String("path", r.cfg.MetricsFile), zap.Error(err))
	}
}

// newRunID generates a time-ordered run identifier
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
