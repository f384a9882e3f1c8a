package wifid

import (
	"context"
	"time"
)

// see ./system/ for implementations

// scan for and join wifi networks through
// the host's network manager
type NetworkManager interface {
	Scan(ctx context.Context, rescan bool) ([]NetworkRecord, error)
	Connect(ctx context.Context, req ConnectRequest) (ConnectResult, error)
}

// runs an external binary and hands back its stdout,
// or an *ExternalToolError
type CommandRunner interface {
	Run(ctx context.Context, inv Invocation) (string, error)
}

// lists the wireless adapters present on the host
type InterfaceLister interface {
	WirelessInterfaces() ([]WirelessInterface, error)
}

// Invocation is one call of the external tool. Args are passed to
// the process verbatim, never through a shell.
type Invocation struct {
	Name    string // short label for logs and metrics, ie: "scan"
	Args    []string
	Timeout time.Duration
}

// Redacted returns Args with any password value masked, for logging.
func (i Invocation) Redacted() []string {
	out := make([]string, len(i.Args))
	copy(out, i.Args)
	// the password pair is always appended last, so an ssid that
	// happens to be "password" cannot hide the real value
	for n := len(out) - 2; n >= 0; n-- {
		if out[n] == "password" {
			out[n+1] = "********"
			break
		}
	}
	return out
}
