// Package actors maintains the curated actor list and per-actor
// filmographies, and reconciles filmographies against the base index to
// build an actor tree that covers supporting-cast appearances the films
// index misses (its cast field only carries top-billed names).
package actors
