// Package scan implements the QR scan-to-return workflow. A matcher
// holds the set of currently dispatched repairs, extracts a repair ID
// from each decoded QR payload and submits the return for a match.
package scan

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ReturnNote is the note recorded on every scan-initiated return.
const ReturnNote = "Scanned QR return"

// trailingID matches a repair ID at the end of a payload, so both bare
// IDs and full return URLs ("http://host/return/<id>") decode.
var trailingID = regexp.MustCompile(`[0-9a-fA-F]{24}$`)

// ExtractID pulls the trailing repair ID out of a decoded QR payload.
// The second return is false when the payload carries no ID.
func ExtractID(payload string) (string, bool) {
	id := trailingID.FindString(payload)
	return id, id != ""
}

// ErrNothingDispatched means a scan session cannot start because there
// are no dispatched repairs to match against.
var ErrNothingDispatched = errors.New("scan: no dispatched repairs to match against")

// ErrNotScanning means a decode arrived outside an active session.
var ErrNotScanning = errors.New("scan: no active session")

// Submitter sends the matched return to the server.
type Submitter interface {
	SubmitReturn(ctx context.Context, repairID, note string) (assetName string, alreadyReturned bool, err error)
}

// Stopper halts the scanning device. The matcher stops the device
// before submitting so a slow request cannot race a second decode.
type Stopper interface {
	Stop() error
}

// Result is the outcome of one decoded payload.
type Result struct {
	Payload         string
	RepairID        string
	AssetName       string
	Matched         bool
	AlreadyReturned bool
}

// Message renders the operator-facing outcome line.
func (r *Result) Message() string {
	switch {
	case !r.Matched:
		return "QR code not recognized or already returned"
	case r.AlreadyReturned:
		return fmt.Sprintf("%s was already returned", r.AssetName)
	default:
		return fmt.Sprintf("%s marked as returned", r.AssetName)
	}
}

type state int

const (
	stateIdle state = iota
	stateScanning
)

// Matcher drives one scan session over a fixed snapshot of dispatched
// repairs. It is safe for concurrent use; a session runs start, any
// number of decodes, stop.
type Matcher struct {
	submit Submitter
	device Stopper

	mu    sync.Mutex
	st    state
	cache map[string]string // repair ID -> asset name
}

// NewMatcher builds a matcher submitting through submit and stopping
// the given device on a decode. device may be nil.
func NewMatcher(submit Submitter, device Stopper) *Matcher {
	return &Matcher{submit: submit, device: device}
}

// Start opens a session against a snapshot of dispatched repairs,
// keyed by repair ID with the asset name as the display value. An
// empty snapshot fails: with nothing dispatched there is nothing a
// scan could ever match.
func (m *Matcher) Start(dispatched map[string]string) error {
	if len(dispatched) == 0 {
		return ErrNothingDispatched
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]string, len(dispatched))
	for id, name := range dispatched {
		m.cache[id] = name
	}
	m.st = stateScanning
	return nil
}

// Scanning reports whether a session is active.
func (m *Matcher) Scanning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st == stateScanning
}

// Stop ends the session and halts the device. Stopping an idle matcher
// is a no-op, so teardown paths can call it unconditionally.
func (m *Matcher) Stop() error {
	m.mu.Lock()
	if m.st == stateIdle {
		m.mu.Unlock()
		return nil
	}
	m.st = stateIdle
	m.cache = nil
	m.mu.Unlock()

	if m.device != nil {
		return m.device.Stop()
	}
	return nil
}

// OnDecode handles one decoded QR payload. The device is stopped
// first, then a matching repair is submitted for return with the fixed
// scan note. A payload with no usable ID, or an ID that is not in the
// dispatched snapshot, ends the session without submitting anything;
// the operator re-opens a session to try again.
func (m *Matcher) OnDecode(ctx context.Context, payload string) (*Result, error) {
	m.mu.Lock()
	if m.st != stateScanning {
		m.mu.Unlock()
		return nil, ErrNotScanning
	}
	m.st = stateIdle
	cache := m.cache
	m.cache = nil
	m.mu.Unlock()

	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			return nil, fmt.Errorf("scan: stop device: %w", err)
		}
	}

	result := &Result{Payload: payload}
	id, ok := ExtractID(payload)
	if !ok {
		return result, nil
	}
	result.RepairID = id

	name, ok := cache[id]
	if !ok {
		return result, nil
	}

	assetName, already, err := m.submit.SubmitReturn(ctx, id, ReturnNote)
	if err != nil {
		return nil, fmt.Errorf("scan: submit return for %s: %w", id, err)
	}
	if assetName == "" {
		assetName = name
	}
	result.Matched = true
	result.AssetName = assetName
	result.AlreadyReturned = already
	return result, nil
}
