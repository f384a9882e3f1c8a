package wifid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSSIDRequired is the only client input error the API produces.
var ErrSSIDRequired = errors.New("ssid required")

// ExternalToolError is returned whenever nmcli exits nonzero, times
// out or could not be started at all.
type ExternalToolError struct {
	Command  string
	Stderr   string
	ExitCode int // -1 when the process never exited on its own
	Err      error
}

func (e *ExternalToolError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s failed", e.Command)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// IsExternalToolError reports whether err came from the external tool.
func IsExternalToolError(err error) bool {
	var te *ExternalToolError
	return errors.As(err, &te)
}
