// Package linktree derives browsable directory trees from the films
// index: one directory per group value (a director, a genre, an actor)
// containing links back to the original files. Trees are derived state;
// the builder never copies file content and can be re-run at any time.
package linktree
