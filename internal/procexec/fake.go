package procexec

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation seen by a FakeRunner.
type Call struct {
	Name string
	Args []string
}

// FakeRunner returns canned results keyed by command line. It is safe for
// concurrent use.
type FakeRunner struct {
	mu       sync.Mutex
	results  map[string]Result
	fallback Result
	calls    []Call
	// Block, when set, is received from before each call returns.
	Block chan struct{}
}

// NewFakeRunner creates a runner whose unknown commands fail with exit
// status 127.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		results:  map[string]Result{},
		fallback: Result{ExitCode: 127, Err: errNotFound},
	}
}

// On registers the result for a command line.
func (f *FakeRunner) On(result Result, name string, args ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[commandLine(name, args)] = result
	return f
}

// Run implements Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) Result {
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return Result{ExitCode: -1, Err: ctx.Err()}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	if res, ok := f.results[commandLine(name, args)]; ok {
		return res
	}
	return f.fallback
}

// Calls returns the invocations seen so far.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

type fakeError string

func (e fakeError) Error() string { return string(e) }

const errNotFound = fakeError("command not found")
