package mail

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Locator reports whether an executable can be found on the search path.
type Locator interface {
	Exists(name string) bool
}

// RunResult carries the outcome of a finished command invocation.
// A non-zero ExitCode is the normal way a failed send is reported.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner invokes a command synchronously, feeding stdin to it and capturing
// its output streams. A command that starts but exits non-zero is reported
// through RunResult.ExitCode with a nil error; the error return is reserved
// for invocations that could not run at all.
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdin string) (RunResult, error)
}

// execLocator locates executables with exec.LookPath.
type execLocator struct{}

func (execLocator) Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// execRunner runs commands with os/exec, capturing stdout and stderr
// separately.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args []string, stdin string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
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
