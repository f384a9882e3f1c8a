package network_nmcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/dogeorg/wifid/pkg/metrics"
	"github.com/sirupsen/logrus"
)

var _ wifid.CommandRunner = &ExecRunner{}

// ExecRunner spawns one nmcli process per call. It holds no state
// between calls, so it is safe to share across requests.
type ExecRunner struct {
	path    string
	log     logrus.FieldLogger
	metrics *metrics.Registry
}

func NewExecRunner(path string, log logrus.FieldLogger, m *metrics.Registry) ExecRunner {
	return ExecRunner{path: path, log: log, metrics: m}
}

func (t ExecRunner) Run(ctx context.Context, inv wifid.Invocation) (string, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, inv.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// don't hang on grandchildren holding our pipes after a kill
	cmd.WaitDelay = time.Second

	log := t.log.WithFields(logrus.Fields{
		"command": inv.Name,
		"args":    inv.Redacted(),
	})
	log.Debug("running nmcli")

	start := time.Now()
	err := cmd.Run()
	took := time.Since(start)

	if err == nil {
		t.metrics.ObserveTool(inv.Name, "ok", took)
		log.WithField("took", took).Debug("nmcli finished")
		return stdout.String(), nil
	}

	toolErr := &wifid.ExternalToolError{
		Command:  inv.Name,
		Stderr:   stderr.String(),
		ExitCode: -1,
		Err:      err,
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		toolErr.ExitCode = exitErr.ExitCode()
	}

	outcome := "error"
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		outcome = "timeout"
		toolErr.Err = fmt.Errorf("%s timed out after %s: %w", inv.Name, inv.Timeout, context.DeadlineExceeded)
	}

	t.metrics.ObserveTool(inv.Name, outcome, took)
	log.WithFields(logrus.Fields{
		"took":     took,
		"exitCode": toolErr.ExitCode,
	}).WithError(toolErr).Warn("nmcli failed")

	return "", toolErr
}
