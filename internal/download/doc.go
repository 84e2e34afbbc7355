// Package download runs the external media downloader for a single link
// fragment and turns its exit status into a Result. The tool is started
// directly with an argument list and inherits the process's output streams.
package download
