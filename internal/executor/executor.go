// Package executor runs proxied shell commands and reports their
// combined output, exit code, and wall time.
//
// DESIGN: Commands run through "sh -c" so pipes and redirections in the
// proxy templates (e.g. "2>&1 | tail -5") behave exactly as they would
// in the user's shell. Stdout and stderr are captured separately and
// concatenated stdout-first, so diagnostics always trail the payload. A
// nonzero exit is a normal outcome, not an error; the returned error is
// reserved for failures to run at all (missing shell, canceled
// context).
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Result is the outcome of one command run.
type Result struct {
	Output     string // stdout followed by stderr
	ExitCode   int
	ExecTimeMS int64
}

// Run executes command through the shell and captures its output.
func Run(ctx context.Context, command string) (Result, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Output:     stdout.String() + stderr.String(),
		ExecTimeMS: time.Since(start).Milliseconds(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
		} else {
			return res, fmt.Errorf("run command '%s': %w", command, err)
		}
	}
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	return res, nil
}

// RunInteractive executes command with the caller's stdio attached, for
// pass-through runs that should behave as if ctk were not in the way.
func RunInteractive(ctx context.Context, command string) (Result, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()

	res := Result{ExecTimeMS: time.Since(start).Milliseconds()}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
		} else {
			return res, fmt.Errorf("run command '%s': %w", command, err)
		}
	}
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	return res, nil
}

// RunComparison executes the unproxied baseline of a command so its
// output size can be compared against the filtered run. Failures and
// timeouts yield an empty string; the baseline is best-effort and must
// never break the real run.
func RunComparison(ctx context.Context, command string, timeout time.Duration) string {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := Run(cctx, command)
	if err != nil {
		return ""
	}
	return res.Output
}
