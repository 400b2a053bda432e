package scoop

import (
	"context"
	"os/exec"
	"strings"

	"github.com/mos1128/scoop-easy/internal/executor"
)

// Runner executes one CLI invocation and reports its combined output and
// exit code. It is an interface so the proxy can be swapped for a fake in
// tests; the real implementation shells out to Scoop.
type Runner interface {
	// Run executes the binary with args. A nonzero exit code is not an
	// error; err is reserved for the command failing to run at all.
	Run(ctx context.Context, args ...string) (output string, exitCode int, err error)

	// CommandLine returns the human-readable command string for args,
	// exactly as recorded in the operation log.
	CommandLine(args ...string) string
}

// ShellRunner runs a binary through the platform shell. On Windows the
// command goes through PowerShell, matching how Scoop is normally
// invoked; elsewhere the binary is executed directly.
type ShellRunner struct {
	binary string
	exec   *executor.Executor
}

// NewShellRunner creates a runner for the given binary ("scoop" or
// "scoop-search").
func NewShellRunner(binary string, exec *executor.Executor) *ShellRunner {
	return &ShellRunner{binary: binary, exec: exec}
}

// Run executes the command and returns combined output and exit code.
func (r *ShellRunner) Run(ctx context.Context, args ...string) (string, int, error) {
	name, argv := shellInvocation(r.binary, args)
	return r.exec.CombinedOutput(ctx, name, argv...)
}

// CommandLine returns the logical command string for the log.
func (r *ShellRunner) CommandLine(args ...string) string {
	return strings.TrimSpace(r.binary + " " + strings.Join(args, " "))
}

// Available reports whether the underlying binary can be found.
func (r *ShellRunner) Available() bool {
	if _, err := exec.LookPath(r.binary); err == nil {
		return true
	}
	// Scoop is a PowerShell function on Windows, so LookPath may miss it
	// even when the shell can resolve it.
	_, err := exec.LookPath("powershell")
	return err == nil
}
