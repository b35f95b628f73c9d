// Package logging builds the slog loggers used across the engine. The
// library itself never logs through a global; everything takes a *slog.Logger
// and defaults to NewNop.
package logging

import (
	"log/slog"
	"os"
)

// New creates the application logger: text on stderr so stdout stays
// reserved for results, "error" attrs shortened to "err", every record
// tagged with the app name so serve and mcp processes stay distinguishable.
func New(level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: shortenErrorKey,
	})
	return slog.New(h).With(slog.String("app", "celestine"))
}

func shortenErrorKey(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// NewNop returns a logger that discards every record. This is the one nop
// idiom in the codebase; silent components take it as their default.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
