// Package logging builds the slog loggers used across cinetree and
// provides the shared attribute helpers and field names that keep
// structured output consistent between commands.
package logging
