package notify

import "sync"

// MockAdapter implements Adapter for testing. It records sent notices and
// can be told to fail.
type MockAdapter struct {
	mu      sync.Mutex
	sent    []Notice
	failErr error
}

// NewMockAdapter creates a MockAdapter.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

func (m *MockAdapter) Name() string { return "mock" }

// Send records the notice, or returns the configured failure.
func (m *MockAdapter) Send(n Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.sent = append(m.sent, n)
	return nil
}

// Sent returns a copy of all recorded notices.
func (m *MockAdapter) Sent() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notice, len(m.sent))
	copy(out, m.sent)
	return out
}

// Fail makes subsequent Send calls return err.
func (m *MockAdapter) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}
