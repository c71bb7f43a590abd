package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/rileyhilliard/tilemon/internal/config"
	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/layout"
)

// ParseInterval parses a poll interval flag. Empty means "use the config".
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 2s, 5s, or 1500ms.")
	}
	if d < config.MinInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", d),
			fmt.Sprintf("Use at least %s.", config.MinInterval))
	}
	return d, nil
}

// parseCell parses a grid coordinate argument.
func parseCell(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrLayout,
			fmt.Sprintf("%s must be a whole number of cells, got '%s'", name, s),
			"Grid cells count from 0 at the top-left.")
	}
	return n, nil
}

// parseColorFlag parses a color flag. "none" or "default" clears the color.
func parseColorFlag(flag, s string) (*layout.ARGB, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "default":
		return nil, nil
	}
	c, err := layout.ParseARGB(s)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLayout,
			fmt.Sprintf("Invalid --%s", flag),
			"Use #RRGGBB, #AARRGGBB, or 'none' for the default color.")
	}
	return &c, nil
}

func parseShapeFlag(s string) (layout.Shape, error) {
	shape, err := layout.ParseShape(s)
	if err != nil {
		return shape, errors.WrapWithCode(err, errors.ErrLayout, "Invalid --shape", "")
	}
	return shape, nil
}

// isInteractive reports whether both stdin and stdout are terminals, so a
// huh prompt can run.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
