package model

import "strings"

// Link is a link fragment as read from the input file, e.g. "/p/Cx1abc/".
// It carries no scheme or domain.
type Link string

// String returns the fragment
func (l Link) String() string {
	return string(l)
}

// HasPrefix reports whether the fragment starts with prefix
func (l Link) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(l), prefix)
}

// Reverse returns a new slice with links in reverse order. The input is not modified.
func Reverse(links []Link) []Link {
	reversed := make([]Link, len(links))
	for i, link := range links {
		reversed[len(links)-1-i] = link
	}
	return reversed
}
