// Package sse provides a minimal Server-Sent Events reader for the two
// streaming transports. Both endpoints this module talks to emit one
// "data: <payload>" line per event, so the reader surfaces data payloads
// only; event:, id:, retry:, and comment lines are skipped.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// Reader reads SSE data payloads from an io.Reader.
//
// Lines are only surfaced once complete: a line split across arbitrary
// transport chunks is held back until its trailing newline arrives, so a
// caller never sees a partial data record.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), 1<<20) // 1 MB line limit
	return &Reader{scanner: sc}
}

// Next returns the payload of the next data line. Returns ("", io.EOF) at
// end of stream.
func (r *Reader) Next() (string, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		return strings.TrimSpace(strings.TrimPrefix(line, "data:")), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
