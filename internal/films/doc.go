// Package films defines the (title, year) identity used to key a film
// across every index, plus the filename pattern machinery that extracts
// identities from library file names.
package films
