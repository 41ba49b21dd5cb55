package testrun

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

// mockCmd records calls and returns configured results.
type mockCmd struct {
	calls    []mockCall
	output   string
	exitCode int
	err      error
	block    bool
}

type mockCall struct {
	Dir     string
	Command string
}

func (m *mockCmd) Run(ctx context.Context, dir string, command string) (string, int, error) {
	m.calls = append(m.calls, mockCall{Dir: dir, Command: command})
	if m.block {
		<-ctx.Done()
		return "", -1, ctx.Err()
	}
	return m.output, m.exitCode, m.err
}

const verbosePassOutput = `=== RUN   TestAlpha
--- PASS: TestAlpha (0.00s)
=== RUN   TestBeta
--- PASS: TestBeta (0.01s)
=== RUN   TestGamma
--- SKIP: TestGamma (0.00s)
PASS
ok  	example.com/pkg	0.015s
`

const verboseFailOutput = `=== RUN   TestAlpha
--- PASS: TestAlpha (0.00s)
=== RUN   TestBeta
    beta_test.go:12: got 2, want 3
--- FAIL: TestBeta (0.01s)
FAIL
FAIL	example.com/pkg	0.015s
`

func TestRunPassing(t *testing.T) {
	mock := &mockCmd{output: verbosePassOutput, exitCode: 0}
	runner := NewRunner(mock)

	res, err := runner.Run("/tmp/proj", "go test -v ./...", 30*time.Second)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Passed {
		t.Error("expected passed=true")
	}
	if res.TestsRun != 3 || res.Failures != 0 || res.Skipped != 1 {
		t.Errorf("counts = %d run / %d fail / %d skip", res.TestsRun, res.Failures, res.Skipped)
	}
	if !strings.Contains(res.Summary, "3 tests") {
		t.Errorf("Summary = %q", res.Summary)
	}
	if len(mock.calls) != 1 || mock.calls[0].Dir != "/tmp/proj" {
		t.Errorf("calls = %+v", mock.calls)
	}
}

func TestRunFailing(t *testing.T) {
	mock := &mockCmd{output: verboseFailOutput, exitCode: 1}
	runner := NewRunner(mock)

	res, err := runner.Run("/tmp/proj", "go test -v ./...", 30*time.Second)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Passed {
		t.Error("expected passed=false")
	}
	if res.Failures != 1 {
		t.Errorf("Failures = %d, want 1", res.Failures)
	}
	if len(res.FailedTests) != 1 || res.FailedTests[0] != "TestBeta" {
		t.Errorf("FailedTests = %v", res.FailedTests)
	}
}

func TestRunNonVerboseFailCountsPackages(t *testing.T) {
	out := "FAIL\texample.com/a\t0.1s\nok  \texample.com/b\t0.1s\nFAIL\texample.com/c\t0.2s\nFAIL\n"
	mock := &mockCmd{output: out, exitCode: 1}
	runner := NewRunner(mock)

	res, err := runner.Run(".", "go test ./...", time.Minute)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Failures != 2 {
		t.Errorf("Failures = %d, want 2 failed packages", res.Failures)
	}
	if res.TestsRun != 0 {
		t.Errorf("TestsRun = %d, want 0 without -v", res.TestsRun)
	}
}

func TestRunTimeout(t *testing.T) {
	mock := &mockCmd{block: true}
	runner := NewRunner(mock)

	res, err := runner.Run(".", "go test ./...", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.TimedOut || res.Passed {
		t.Errorf("result = %+v, want timed out failure", res)
	}
	if !strings.Contains(res.Summary, "timeout") {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestRunCommandError(t *testing.T) {
	mock := &mockCmd{err: fmt.Errorf("sh not found")}
	runner := NewRunner(mock)

	if _, err := runner.Run(".", "go test ./...", time.Minute); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunEmptyCommand(t *testing.T) {
	runner := NewRunner(&mockCmd{})
	if _, err := runner.Run(".", "", time.Minute); err == nil {
		t.Fatal("expected error for empty command")
	}
}
