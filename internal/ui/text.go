// Package ui formats console output for email2hash.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter colors text, or decorates it with a prefix and suffix when color
// is disabled.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

func (f Formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor honors NO_COLOR (https://no-color.org/) and fatih/color's own
// terminal detection.
func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	// Path formats file paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Secret formats the generated passphrase. Callers quote it themselves.
	Secret = Formatter{color.New(color.FgHiWhite, color.Bold), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Muted formats secondary details such as timings, in parentheses without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
