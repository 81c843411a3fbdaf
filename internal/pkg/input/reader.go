// Package input provides the line-oriented ingestion boundary: one record
// per newline-terminated line, usually arriving over a serial transport.
// The engine never owns the transport, it only consumes cleaned lines.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tiltmidi/tiltmidi/internal/pkg/logger"
)

var log = logger.GetLogger()

// ErrTransportUnavailable marks a transport that could not be opened or that
// went away mid-session. Recoverable at session granularity only.
var ErrTransportUnavailable = errors.New("transport unavailable")

// Open opens the sensor transport, a character device or any line-oriented
// file. The caller owns the returned handle.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransportUnavailable, err)
	}
	return f, nil
}

// Lines delivers raw records from r on the returned channel. The channel is
// closed when the transport ends or the context is cancelled; closure means
// "no more samples", never a reason to crash. Oversized or torn lines are
// reported and dropped by the scanner.
func Lines(ctx context.Context, r io.Reader) <-chan string {
	var lines = make(chan string, 16)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Info(fmt.Sprintf("transport read ended: %v", err), logger.Warning)
		}
	}()

	return lines
}
