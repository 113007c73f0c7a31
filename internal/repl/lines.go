// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repl

import (
	"bufio"
	"context"
	"io"
)

// lineReader scans in on its own goroutine so a blocked read does not
// keep the loops from noticing a cancelled context.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error // valid once lines is closed
}

func newLineReader(in io.Reader) *lineReader {
	r := &lineReader{lines: make(chan string), done: make(chan struct{})}
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-r.done:
				return
			}
		}
		r.err = scanner.Err()
	}()
	return r
}

// next returns the next line. ok is false at EOF or on a read error;
// a cancelled ctx returns ctx.Err().
func (r *lineReader) next(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", false, r.err
		}
		return line, true, nil
	}
}

// close stops the scanning goroutine once it next delivers a line.
func (r *lineReader) close() { close(r.done) }
