package execx

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeRunner is a scripted Runner for tests. Responses are keyed by the
// joined command line ("git pull", "mix deps.update --all"); an optional
// per-directory key ("<dir>|git pull") takes precedence so tests can give
// individual projects different outcomes.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []FakeCall
}

// FakeCall records one invocation seen by the fake.
type FakeCall struct {
	Dir  string
	Name string
	Args []string
}

type fakeResponse struct {
	result Result
	err    error
}

// NewFakeRunner returns an empty fake. Unscripted commands succeed with no
// output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]fakeResponse)}
}

// Script sets the outcome for a command line regardless of directory.
func (f *FakeRunner) Script(cmdline string, res Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = fakeResponse{result: res}
}

// ScriptDir sets the outcome for a command line in one specific directory.
func (f *FakeRunner) ScriptDir(dir, cmdline string, res Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[dir+"|"+cmdline] = fakeResponse{result: res}
}

// ScriptError makes a command line fail at invocation (binary missing).
func (f *FakeRunner) ScriptError(cmdline string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = fakeResponse{err: err}
}

// ScriptDirError makes a command line fail at invocation in one directory.
func (f *FakeRunner) ScriptDirError(dir, cmdline string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[dir+"|"+cmdline] = fakeResponse{err: err}
}

// Run implements Runner.
func (f *FakeRunner) Run(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, FakeCall{Dir: dir, Name: name, Args: args})

	cmdline := strings.Join(append([]string{name}, args...), " ")
	if resp, ok := f.responses[dir+"|"+cmdline]; ok {
		return resp.result, resp.err
	}
	if resp, ok := f.responses[cmdline]; ok {
		return resp.result, resp.err
	}
	return Result{}, nil
}

// Calls returns the invocations seen so far, in order.
func (f *FakeRunner) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallLines renders the recorded calls as "<dir>: <cmdline>" strings, which
// makes ordering assertions readable.
func (f *FakeRunner) CallLines() []string {
	calls := f.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, fmt.Sprintf("%s: %s", c.Dir, strings.Join(append([]string{c.Name}, c.Args...), " ")))
	}
	return out
}
