// Package index maintains the on-disk film indices under a library root:
// the base index (identity → path, produced by scanning), the films index
// (base index enriched with director/genre/cast metadata), and the faulty
// side file listing identities whose metadata could not be resolved.
//
// All three are headerless tab-separated files. The formats are an
// external contract, so rows are emitted verbatim with no quoting.
package index
