// Package metadata resolves director/genre/cast metadata for film
// identities through an ordered chain of lookup providers. Each provider
// call yields exactly one of three outcomes: an exact match, an ambiguous
// match, or no match. Only an exact match resolves an identity; anything
// else falls through to the next provider, and an identity that exhausts
// the chain becomes a faulty entry for the operator to remediate.
//
// Failure handling is deliberately asymmetric: per-title absence of data
// is a soft failure recorded and skipped, while a single network call
// that exhausts its retry budget aborts the entire run.
package metadata
