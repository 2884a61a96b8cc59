// Package execx abstracts external command invocation so batch operations
// can be tested without real mix/git/playerctl binaries on the machine.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result carries the captured outcome of one finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// FirstStderrLine returns the first line of stderr, or fallback when stderr
// is empty. Used for the short per-project failure diagnostics.
func (r Result) FirstStderrLine(fallback string) string {
	data := bytes.TrimRight(r.Stderr, "\n")
	if len(data) == 0 {
		return fallback
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return string(data)
}

// Runner invokes external commands. A non-zero exit is NOT an error: it is
// reported through Result.ExitCode with stderr captured. The returned error
// is non-nil only for invocation failures (binary missing, spawn failure),
// which callers treat the same as a command failure but with the error text
// as the diagnostic.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (Result, error)
}

// OSRunner runs commands with os/exec. Output is captured, never streamed.
// No timeout is imposed: a hung external command blocks its batch, which is
// an accepted limitation of the sequential execution model.
type OSRunner struct{}

// Run executes name with args in dir.
func (OSRunner) Run(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
