package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// maxRecordSize bounds a single log record when scanning a file.
const maxRecordSize = 1 << 20

// Tail returns at most n records from the end of the log file at path, oldest
// first. A missing file yields no records.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ring := make([]string, n)
	seen := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	for sc.Scan() {
		ring[seen%n] = sc.Text()
		seen++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan log file: %w", err)
	}

	if seen <= n {
		return ring[:seen], nil
	}
	out := make([]string, 0, n)
	start := seen % n
	out = append(out, ring[start:]...)
	out = append(out, ring[:start]...)
	return out, nil
}
