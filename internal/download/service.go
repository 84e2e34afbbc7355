package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/ig-downloader/internal/logging"
	"github.com/ytget/ig-downloader/internal/model"
)

// Tool invocation constants
const (
	// DefaultTool is the downloader executable, looked up in PATH
	DefaultTool = "yt-dlp"

	// DefaultBaseURL is prepended to every link fragment
	DefaultBaseURL = "https://instagram.com"

	// PathsFlag sets the tool's download directory
	PathsFlag = "-P"
)

// Service runs the external downloader tool
type Service struct {
	tool    string
	baseURL string
	stdout  io.Writer
	stderr  io.Writer
	logger  *zap.Logger
}

// NewService creates a new download service. Empty tool and baseURL fall back
// to DefaultTool and DefaultBaseURL.
func NewService(tool, baseURL string, logger *zap.Logger) *Service {
	if tool == "" {
		tool = DefaultTool
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		tool:    tool,
		baseURL: baseURL,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  logging.OrNop(logger),
	}
}

// SetOutput redirects the tool's stdout and stderr
func (s *Service) SetOutput(stdout, stderr io.Writer) {
	s.stdout = stdout
	s.stderr = stderr
}

// Tool returns the downloader executable
func (s *Service) Tool() string {
	return s.tool
}

// BuildURL joins the base URL and the fragment as is, without escaping
func (s *Service) BuildURL(link model.Link) string {
	return s.baseURL + link.String()
}

// BuildArgs builds the downloader command arguments
func (s *Service) BuildArgs(downloadDir, url string) []string {
	return []string{
		PathsFlag, downloadDir, // Download directory
		url, // Post URL
	}
}

// Download runs the tool for link and waits for it to exit. A zero exit status
// is a success; anything else, including a failure to start the tool, is a failure.
func (s *Service) Download(ctx context.Context, link model.Link, downloadDir string) (result *model.Result) {
	url := s.BuildURL(link)
	result = &model.Result{
		Link:     link,
		URL:      url,
		Status:   model.StatusPending,
		ExitCode: model.NoExitCode,
	}

	defer func() {
		if r := recover(); r != nil {
			s.fail(result, fmt.Errorf("panic while running %s: %v", s.tool, r))
		}
	}()

	s.logger.Info(fmt.Sprintf("Processing: %s", url))

	cmd := exec.CommandContext(ctx, s.tool, s.BuildArgs(downloadDir, url)...)
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr

	result.Status = model.StatusInvoking
	result.StartedAt = time.Now()
	err := cmd.Run()
	result.FinishedAt = time.Now()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.Status = model.StatusSucceeded
		result.ExitCode = 0
		s.logger.Info(fmt.Sprintf("Successfully downloaded: %s", url),
			zap.Duration("duration", result.Duration()))
	case errors.As(err, &exitErr):
		result.Status = model.StatusFailed
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
		s.logger.Error(fmt.Sprintf("Failed to download %s", url),
			zap.Int("exit_code", result.ExitCode))
	default:
		s.fail(result, fmt.Errorf("failed to start %s: %w", s.tool, err))
	}

	return result
}

// fail marks a result whose tool could not be run
func (s *Service) fail(result *model.Result, err error) {
	result.Status = model.StatusFailed
	result.Err = err
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}
	s.logger.Error(fmt.Sprintf("Error processing %s: %v", result.URL, err))
}
