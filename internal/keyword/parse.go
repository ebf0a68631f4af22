package keyword

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// parseLine parses one store line. ok is false for comments and blank lines;
// err is set for lines without a comma.
func parseLine(line string) (fp string, r Record, ok bool, err error) {
	l := strings.TrimSpace(line)
	if l == "" || strings.HasPrefix(l, "#") {
		return "", Record{}, false, nil
	}
	fields := strings.Split(l, ",")
	if len(fields) < 2 {
		return "", Record{}, false, fmt.Errorf("missing keyword field")
	}
	r.Keywords = strings.TrimSpace(fields[1])
	if len(fields) > 2 {
		r.DisplayName = strings.TrimSpace(fields[2])
	}
	return strings.TrimSpace(fields[0]), r, true, nil
}

// formatLine is the inverse of parseLine.
func formatLine(fp string, r Record) string {
	s := fp + ", " + r.Keywords
	if r.DisplayName != "" {
		s += ", " + r.DisplayName
	}
	return s
}

// Parse reads a layer from r. Malformed lines are logged and skipped; name
// identifies the source in log output.
func Parse(r io.Reader, name string, logger *slog.Logger) (*Layer, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	layer := NewLayer()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fp, rec, ok, err := parseLine(scanner.Text())
		if err != nil {
			logger.Warn("skipping malformed keyword line", "store", name, "line", lineNo, "err", err)
			continue
		}
		if !ok {
			continue
		}
		layer.Set(fp, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read keyword store %s: %w", name, err)
	}
	return layer, nil
}
