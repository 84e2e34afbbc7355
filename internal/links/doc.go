// Package links loads link fragments from the comma-separated input file and
// selects the post links among them.
package links
