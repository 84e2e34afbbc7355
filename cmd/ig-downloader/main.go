package main

import (
	"context"
	"os"

	"github.com/ytget/ig-downloader/internal/app"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	os.Exit(app.Run(context.Background(), os.Args[1:], app.Options{
		Name:    app.DefaultName,
		Version: version,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}))
}
