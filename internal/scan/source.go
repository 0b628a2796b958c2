package scan

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/hward/assetdesk/internal/client"
)

// LineSource reads decoded payloads line by line from a reader. Most
// handheld scanners present as a keyboard wedge, so a payload arrives
// as one line of input.
type LineSource struct {
	scanner *bufio.Scanner

	mu      sync.Mutex
	stopped bool
}

// NewLineSource wraps a reader, typically os.Stdin.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{scanner: bufio.NewScanner(r)}
}

// Next returns the next payload. ok is false once the source is
// stopped or the reader is exhausted.
func (l *LineSource) Next() (payload string, ok bool) {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return "", false
	}
	if !l.scanner.Scan() {
		return "", false
	}
	return l.scanner.Text(), true
}

// Stop halts the source. Idempotent.
func (l *LineSource) Stop() error {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	return nil
}

// ClientSubmitter submits returns through the API client.
type ClientSubmitter struct {
	Client *client.Client
}

// SubmitReturn marks the repair returned on the server.
func (s *ClientSubmitter) SubmitReturn(ctx context.Context, repairID, note string) (string, bool, error) {
	result, err := s.Client.ReturnRepair(ctx, repairID, note)
	if err != nil {
		return "", false, err
	}
	return result.Repair.AssetName, result.AlreadyReturned, nil
}
