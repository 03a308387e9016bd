// Package logging sets up the zerolog output of the command.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a configured level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	switch name {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
}

// ConsoleWriter returns a zerolog console writer for f, with colours
// only when f is a terminal.
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	return zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.TimeOnly}
}

// Setup installs the global logger at the given level, writing to stderr.
func Setup(level string) error {
	return SetupOutput(level, ConsoleWriter(os.Stderr))
}

// SetupOutput installs the global logger at the given level, writing to w.
// Loggers obtained from For before the call keep their old output.
func SetupOutput(level string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(w)
	return nil
}

// For returns a logger tagged with the subsystem name.
func For(sys string) zerolog.Logger {
	return log.With().Str("sys", sys).Logger()
}
