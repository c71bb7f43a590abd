package dashboard

import (
	"context"
	stderrors "errors"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// Run takes over the terminal until the user quits or ctx is cancelled.
//
// The standard logger is redirected while the screen is in use: to logFile
// when set, otherwise discarded.
func Run(ctx context.Context, m Model, logFile string) error {
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "tilemon")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot open log file "+logFile,
				"Check log_file in your config points somewhere writable")
		}
		defer f.Close()
	} else {
		prev := log.Writer()
		log.SetOutput(io.Discard)
		defer log.SetOutput(prev)
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.shutdown()
	} else {
		m.shutdown()
	}
	if err != nil && !stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Dashboard exited with an error",
			"Make sure you are running in an interactive terminal")
	}
	return nil
}
