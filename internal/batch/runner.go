// Package batch runs the downloader over a batch of post links, one at a
// time, oldest first.
package batch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/ig-downloader/internal/download"
	"github.com/ytget/ig-downloader/internal/logging"
	"github.com/ytget/ig-downloader/internal/metrics"
	"github.com/ytget/ig-downloader/internal/model"
)

// PauseFunc blocks for d or until ctx is done
type PauseFunc func(ctx context.Context, d time.Duration) error

// Runner processes a batch of links sequentially
type Runner struct {
	downloader download.Downloader
	delay      time.Duration
	pause      PauseFunc
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// Option configures a Runner
type Option func(*Runner)

// WithDelay sets the pause between two downloads. Zero or negative disables it.
func WithDelay(delay time.Duration) Option {
	return func(r *Runner) {
		r.delay = delay
	}
}

// WithPauseFunc replaces the function used to wait between downloads
func WithPauseFunc(pause PauseFunc) Option {
	return func(r *Runner) {
		if pause != nil {
			r.pause = pause
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.OrNop(logger)
	}
}

// WithMetrics records per-download metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner creates a runner that delegates each link to downloader
func NewRunner(downloader download.Downloader, opts ...Option) *Runner {
	r := &Runner{
		downloader: downloader,
		pause:      Sleep,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run downloads every link of batch into downloadDir. The input lists newest
// first, so links are processed in reverse order. A failed download never
// stops the batch; only a cancelled context does.
func (r *Runner) Run(ctx context.Context, batch []model.Link, downloadDir string) model.Summary {
	summary := model.Summary{Total: len(batch)}

	links := model.Reverse(batch)
	r.logger.Info("Reversing order of list so oldest is downloaded first")

	for i, link := range links {
		r.logger.Info(fmt.Sprintf("Progress: %d/%d", i+1, summary.Total))

		result := r.downloader.Download(ctx, link, downloadDir)
		summary.Add(result)
		r.metrics.ObserveDownload(result)

		if r.delay > 0 && i < len(links)-1 {
			r.logger.Info(fmt.Sprintf("Waiting %s before next download", r.delay))
			if err := r.pause(ctx, r.delay); err != nil {
				r.logger.Warn("Batch interrupted", zap.Error(err),
					zap.Int("remaining", len(links)-i-1))
				return summary
			}
			r.metrics.ObservePause(r.delay)
		}
	}

	r.logger.Info("All downloads completed",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))

	return summary
}

// Sleep waits for d, returning early with the context error if ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
