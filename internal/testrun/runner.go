package testrun

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Result holds the structured output of a test run.
type Result struct {
	Command     string   `json:"command"`
	Passed      bool     `json:"passed"`
	TimedOut    bool     `json:"timed_out"`
	ExitCode    int      `json:"exit_code"`
	DurationMs  int      `json:"duration_ms"`
	TestsRun    int      `json:"tests_run"`
	Failures    int      `json:"failures"`
	Skipped     int      `json:"skipped"`
	FailedTests []string `json:"failed_tests,omitempty"`
	Summary     string   `json:"summary"`
	Output      string   `json:"output,omitempty"`
}

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, dir string, command string) (output string, exitCode int, err error)
}

// ExecRunner implements CommandRunner by shelling out.
type ExecRunner struct{}

func (e *ExecRunner) Run(ctx context.Context, dir string, command string) (string, int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	var buf strings.Builder
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return buf.String(), -1, fmt.Errorf("exec: %w", err)
		}
	}
	return buf.String(), exitCode, nil
}

// Runner executes a test command and parses its output.
type Runner struct {
	cmd CommandRunner
}

// NewRunner creates a Runner with the given command runner.
func NewRunner(cmd CommandRunner) *Runner {
	return &Runner{cmd: cmd}
}

// Run executes the test command in dir with a timeout. A timeout produces a
// failed Result, not an error.
func (r *Runner) Run(dir, command string, timeout time.Duration) (*Result, error) {
	if command == "" {
		return nil, fmt.Errorf("test command is required")
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	output, exitCode, err := r.cmd.Run(ctx, dir, command)
	durationMs := int(time.Since(start).Milliseconds())

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &Result{
				Command:    command,
				TimedOut:   true,
				ExitCode:   -1,
				DurationMs: durationMs,
				Summary:    fmt.Sprintf("timeout after %s", timeout),
				Output:     output,
			}, nil
		}
		return nil, fmt.Errorf("run tests: %w", err)
	}

	parsed := parseGoTest(output)
	res := &Result{
		Command:     command,
		Passed:      exitCode == 0,
		ExitCode:    exitCode,
		DurationMs:  durationMs,
		TestsRun:    parsed.run,
		Failures:    parsed.failures,
		Skipped:     parsed.skipped,
		FailedTests: parsed.failedTests,
		Output:      output,
	}
	res.Summary = summarize(res)
	return res, nil
}

func summarize(r *Result) string {
	if r.TestsRun == 0 {
		if r.Passed {
			return fmt.Sprintf("passed (exit code %d)", r.ExitCode)
		}
		return fmt.Sprintf("failed (exit code %d)", r.ExitCode)
	}
	status := "passed"
	if !r.Passed {
		status = "failed"
	}
	s := fmt.Sprintf("%s: %d tests, %d failures", status, r.TestsRun, r.Failures)
	if r.Skipped > 0 {
		s += fmt.Sprintf(", %d skipped", r.Skipped)
	}
	return s
}
