// Package mocks provides mock implementations for testing
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ytget/ig-downloader/internal/model"
)

// MockDownloader is a mock implementation of download.Downloader
type MockDownloader struct {
	mock.Mock
}

// Download mocks the Download method
func (m *MockDownloader) Download(ctx context.Context, link model.Link, downloadDir string) *model.Result {
	args := m.Called(ctx, link, downloadDir)
	if fn, ok := args.Get(0).(func(context.Context, model.Link, string) *model.Result); ok {
		return fn(ctx, link, downloadDir)
	}
	if result, ok := args.Get(0).(*model.Result); ok {
		return result
	}
	return nil
}

// Result builds a finished result for link with the given status
func Result(link model.Link, status model.Status) *model.Result {
	exitCode := 0
	if status == model.StatusFailed {
		exitCode = 1
	}
	return &model.Result{
		Link:     link,
		URL:      "https://instagram.com" + link.String(),
		Status:   status,
		ExitCode: exitCode,
	}
}
