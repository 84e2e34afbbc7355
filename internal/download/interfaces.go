package download

import (
	"context"

	"github.com/ytget/ig-downloader/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	// Download fetches one link into downloadDir. Failures are reported in
	// the returned Result, never as a panic or a separate error.
	Download(ctx context.Context, link model.Link, downloadDir string) *model.Result
}
