// Package model defines the data structures shared across the downloader: link
// fragments, per-item download status, per-item results and the run summary.
package model
