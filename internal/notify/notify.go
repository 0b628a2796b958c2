// Package notify delivers reminder and assignment notices through
// pluggable adapters (Slack, Discord, shell command).
package notify

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// Notice is one outbound notification.
type Notice struct {
	Subject string
	Body    string
}

// Adapter delivers notices to one destination.
type Adapter interface {
	Name() string
	Send(n Notice) error
}

// Multi fans a notice out to every adapter. Best-effort: per-adapter
// failures are logged, not returned, so one dead webhook cannot block a
// reminder sweep.
type Multi struct {
	adapters []Adapter
}

// NewMulti builds a fan-out notifier over the given adapters.
func NewMulti(adapters ...Adapter) *Multi {
	return &Multi{adapters: adapters}
}

// Send delivers the notice to all adapters.
func (m *Multi) Send(n Notice) {
	for _, a := range m.adapters {
		if err := a.Send(n); err != nil {
			log.Printf("notify: %s: %v", a.Name(), err)
		}
	}
}

// Len returns the number of configured adapters.
func (m *Multi) Len() int { return len(m.adapters) }

// CommandAdapter runs a shell command template for each notice, e.g.
// "notify-send 'Assetdesk' '{{.Subject}}'".
type CommandAdapter struct {
	Command string
}

func (c *CommandAdapter) Name() string { return "command" }

// Send substitutes the notice into the template and runs it via sh -c.
func (c *CommandAdapter) Send(n Notice) error {
	r := strings.NewReplacer(
		"{{.Subject}}", n.Subject,
		"{{.Body}}", n.Body,
	)
	cmd := exec.Command("sh", "-c", r.Replace(c.Command))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify: command failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
