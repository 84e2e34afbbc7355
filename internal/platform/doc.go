// Package platform contains OS integration helpers: home directory expansion
// and resolution of the download directory.
package platform
