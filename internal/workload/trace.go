package workload

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxTraceLine = 1 << 20

// ReadTrace decodes a whole trace. Blank lines and lines starting with # are
// skipped. Decode errors carry the 1-based line number.
func ReadTrace(r io.Reader) ([]Op, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxTraceLine)

	var ops []Op
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		op, err := Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return ops, nil
}
