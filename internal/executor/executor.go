// Package executor handles subprocess execution with output capture.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Executor runs external commands and captures their output.
type Executor struct {
	dryRun  bool
	verbose bool
}

// New creates a new Executor with the given options.
func New(dryRun, verbose bool) *Executor {
	return &Executor{
		dryRun:  dryRun,
		verbose: verbose,
	}
}

// CombinedOutput runs a command and returns its combined stdout and
// stderr together with the process exit code. A nonzero exit is not an
// error here: the exit code carries the verdict and the output carries
// the diagnostic. The returned error is reserved for failures to run at
// all (binary not found, context deadline exceeded).
func (e *Executor) CombinedOutput(ctx context.Context, name string, args ...string) (string, int, error) {
	if e.dryRun {
		e.printDryRun(name, args)
		return "", 0, nil
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	if e.verbose {
		fmt.Printf("Executing: %s %s\n", name, strings.Join(args, " "))
	}

	err := cmd.Run()
	if err == nil {
		return combined.String(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return combined.String(), exitErr.ExitCode(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return combined.String(), -1, ctxErr
	}
	return combined.String(), -1, err
}

func (e *Executor) printDryRun(name string, args []string) {
	fmt.Printf("[dry-run] Would execute: %s %s\n", name, strings.Join(args, " "))
}
