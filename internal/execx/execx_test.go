package execx

import (
	"context"
	"errors"
	"testing"
)

func TestResultFirstStderrLine(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"empty", "", "failed"},
		{"single line", "boom\n", "boom"},
		{"multi line", "first\nsecond\n", "first"},
		{"no trailing newline", "only", "only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{Stderr: []byte(tt.stderr)}
			if got := r.FirstStderrLine("failed"); got != tt.want {
				t.Errorf("FirstStderrLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOSRunnerCapturesOutput(t *testing.T) {
	var r OSRunner
	res, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Success() {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if string(res.Stdout) != "out\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if string(res.Stderr) != "err\n" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestOSRunnerNonZeroExitIsNotAnError(t *testing.T) {
	var r OSRunner
	res, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo nope >&2; exit 3")
	if err != nil {
		t.Fatalf("Run() error = %v, want nil for non-zero exit", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.FirstStderrLine("failed") != "nope" {
		t.Errorf("stderr = %q", res.Stderr)
	}
}

func TestOSRunnerMissingBinary(t *testing.T) {
	var r OSRunner
	_, err := r.Run(context.Background(), t.TempDir(), "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("Run() error = nil, want invocation error")
	}
}

func TestFakeRunnerScripting(t *testing.T) {
	fake := NewFakeRunner()
	fake.Script("git pull", Result{Stdout: []byte("Already up to date.\n")})
	fake.ScriptDir("/srv/special", "git pull", Result{ExitCode: 1, Stderr: []byte("conflict\n")})
	fake.ScriptError("mix deps.update --all", errors.New("mix: not found"))

	ctx := context.Background()

	res, err := fake.Run(ctx, "/srv/plain", "git", "pull")
	if err != nil || !res.Success() || string(res.Stdout) != "Already up to date.\n" {
		t.Errorf("generic script: res=%+v err=%v", res, err)
	}

	res, err = fake.Run(ctx, "/srv/special", "git", "pull")
	if err != nil || res.ExitCode != 1 {
		t.Errorf("dir script should win: res=%+v err=%v", res, err)
	}

	if _, err = fake.Run(ctx, "/srv/plain", "mix", "deps.update", "--all"); err == nil {
		t.Error("scripted invocation error not returned")
	}

	// Unscripted commands succeed quietly.
	res, err = fake.Run(ctx, "/srv/plain", "git", "status", "--porcelain")
	if err != nil || !res.Success() {
		t.Errorf("unscripted: res=%+v err=%v", res, err)
	}

	if got := len(fake.Calls()); got != 4 {
		t.Errorf("Calls() = %d, want 4", got)
	}
}
