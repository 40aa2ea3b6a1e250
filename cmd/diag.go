package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

func checkColorMode(mode string) error {
	switch mode {
	case colorAuto, colorAlways, colorNever, "":
		return nil
	}
	return fmt.Errorf("%w: invalid --color %q (want auto, always or never)", errUsage, mode)
}

// newLogger logs to w without timestamps; INFO is the unmarked level.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey && a.Value.String() == "INFO" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useColor decides for w itself; color.NoColor only reflects stdout.
func useColor(w io.Writer, mode string) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(f.Fd())
}

// reportError writes the one-line diagnostic for err.
func reportError(w io.Writer, mode string, err error) {
	prefix := color.New(color.FgRed, color.Bold)
	if useColor(w, mode) {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}
	fmt.Fprintf(w, "%s %v\n", prefix.Sprint("Error:"), err)
}
