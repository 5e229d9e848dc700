// Package launcher runs the configured compiler on the current file and
// turns its output into diagnostics.
package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"

	"github.com/kobzarvs/qcode/internal/logger"
)

var ErrNoCommand = errors.New("no compiler command configured")

// Placeholder in Command replaced by the file path. When the command has no
// placeholder the path is appended as the last argument.
const Placeholder = "{file}"

type Launcher struct {
	Command  string
	Detached bool
}

type Result struct {
	Args        []string
	Output      string
	ExitCode    int
	Duration    time.Duration
	Diagnostics []Diagnostic
}

// OK reports whether the compiler exited cleanly.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Args expands Command for file.
func (l Launcher) Args(file string) ([]string, error) {
	if strings.TrimSpace(l.Command) == "" {
		return nil, ErrNoCommand
	}
	args, err := shellwords.Parse(l.Command)
	if err != nil {
		return nil, fmt.Errorf("parse compiler command: %w", err)
	}
	if len(args) == 0 {
		return nil, ErrNoCommand
	}
	found := false
	for i, a := range args {
		if strings.Contains(a, Placeholder) {
			args[i] = strings.ReplaceAll(a, Placeholder, file)
			found = true
		}
	}
	if !found && file != "" {
		args = append(args, file)
	}
	return args, nil
}

// Run executes the compiler and waits for it. A non-zero exit is reported in
// Result, not as an error.
func (l Launcher) Run(ctx context.Context, file string) (Result, error) {
	args, err := l.Args(file)
	if err != nil {
		return Result{}, err
	}
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	begin := time.Now()
	err = cmd.Run()
	res := Result{Args: args, Output: out.String(), Duration: time.Since(begin)}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, fmt.Errorf("run %s: %w", args[0], err)
	}
	res.Diagnostics = ParseDiagnostics(res.Output)
	logger.Info("compiler finished",
		"cmd", args[0], "exit", res.ExitCode,
		"diagnostics", len(res.Diagnostics), "took", res.Duration)
	return res, nil
}

// Start launches the compiler without waiting for it.
func (l Launcher) Start(file string) (int, error) {
	args, err := l.Args(file)
	if err != nil {
		return 0, err
	}
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", args[0], err)
	}
	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		logger.Debug("detached compiler exited", "pid", pid, "err", err)
	}()
	logger.Info("compiler started", "cmd", args[0], "pid", pid)
	return pid, nil
}
