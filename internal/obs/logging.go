// Package obs wires up the one logger each ask433 binary uses for its own
// output, separately from the *log.Logger an ask433.Driver is given for
// its own mode-transition/packet events.
package obs

import (
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// New builds a logger writing to stderr at the named level (debug, info,
// warn, error; anything else falls back to info).
func New(level string) *charmlog.Logger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
	})
	l.SetLevel(parseLevel(level))
	return l
}

func parseLevel(s string) charmlog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}
