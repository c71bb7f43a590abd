package telemetry

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// Indexed dumps name each value after a property and a slot, e.g.
// Sensor0, Label0, Value0, Sensor1, ... Only the prefix is matched, so
// ValueRaw3 still lands in slot 3 under "ValueRaw".
var indexedKey = regexp.MustCompile(`^([A-Za-z]+)(\d+)`)

// ParseIndexed groups property/slot values into metrics ordered by slot.
// Properties other than Sensor, Label and Value are ignored; slots missing a
// property leave that field empty.
func ParseIndexed(values map[string]string) []Metric {
	slots := make(map[int]*Metric)

	for key, value := range values {
		m := indexedKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		metric, ok := slots[idx]
		if !ok {
			metric = &Metric{ID: idx}
			slots[idx] = metric
		}

		switch m[1] {
		case "Sensor":
			metric.Group = value
		case "Label":
			metric.Label = value
		case "Value":
			metric.Value = value
		}
	}

	indices := make([]int, 0, len(slots))
	for idx := range slots {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	out := make([]Metric, 0, len(indices))
	for _, idx := range indices {
		out = append(out, *slots[idx])
	}
	return out
}

// ReadIndexed reads a key=value dump. Both plain lines (Label0=CPU) and
// registry export lines ("Label0"="CPU") are accepted. Blank lines, section
// headers and lines starting with # or ; are skipped.
func ReadIndexed(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "[") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = unquote(strings.TrimSpace(key))
		value = unquote(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch, "Failed to read sensor dump", "")
	}
	return values, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
