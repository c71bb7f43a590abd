package server

import (
	"context"
	"fmt"
	"os"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
)

// FileProvider serves an indexed sensor dump (Sensor0=, Label0=, Value0=, ...)
// re-read on every request, so an external tool can keep rewriting it.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Readings(ctx context.Context) ([]telemetry.Metric, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Cannot open sensor dump %s", p.path),
			"Check serve.file points at the exported sensor values")
	}
	defer f.Close()

	values, err := telemetry.ReadIndexed(f)
	if err != nil {
		return nil, err
	}
	return telemetry.ParseIndexed(values), nil
}
