// Package exec provides the subprocess runner adapter.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run spawns one process and waits for it. Output is always captured so that
// a failure can report what the tool printed; optional sinks in the
// invocation additionally receive the streams as they are produced.
func (r *Runner) Run(ctx context.Context, inv ports.Invocation) (ports.Result, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, inv.Exec, inv.Args...) //nolint:gosec // tool and args come from the registry and the build profile
	cmd.Dir = inv.Dir
	cmd.Env = inv.Env
	cmd.Stdout = sink(&stdout, inv.Stdout)
	cmd.Stderr = sink(&stderr, inv.Stderr)

	r.logger.Debug("running: " + inv.Exec + " " + strings.Join(inv.Args, " "))

	err := cmd.Run()
	res := ports.Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	exitCode := -1 // spawn failure or signal
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	zErr := zerr.With(domain.ErrToolExecution, "exec", inv.Exec)
	zErr = zerr.With(zErr, "cause", err.Error())
	zErr = zerr.With(zErr, "exit_code", exitCode)
	zErr = zerr.With(zErr, "stdout", stdout.String())
	zErr = zerr.With(zErr, "stderr", stderr.String())
	return res, zErr
}

func sink(buf *bytes.Buffer, extra io.Writer) io.Writer {
	if extra == nil {
		return buf
	}
	return io.MultiWriter(buf, extra)
}
