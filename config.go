package divoomdec

import (
	"io"
	"log/slog"
	"os"
)

// Config holds the decoder's one user-visible knob (§6): a
// debug/verbose flag that enables per-frame trace logging inside the
// HierPalette quad-tree walk. A nil *Config (or zero value) decodes
// silently.
type Config struct {
	// Debug enables per-frame HierPalette trace logging.
	Debug bool

	// Logger receives debug output when Debug is true. When it is nil
	// and Debug is true, output goes to stderr at debug level; when
	// Debug is false, nothing is logged.
	Logger *slog.Logger
}

// logger returns the logger HierPalette decoding should trace to: a
// discarding logger unless Debug is set, in which case it's c.Logger or,
// absent an override, a stderr logger at debug level.
func (c *Config) logger() *slog.Logger {
	if !c.debug() {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (c *Config) debug() bool {
	return c != nil && c.Debug
}
