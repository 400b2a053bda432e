//go:build windows

package scoop

import "strings"

// shellInvocation wraps the command in PowerShell. Scoop installs itself
// as a PowerShell function, so invoking the binary directly would miss
// the user's shim setup.
func shellInvocation(binary string, args []string) (string, []string) {
	cmd := strings.TrimSpace(binary + " " + strings.Join(args, " "))
	return "powershell", []string{"-NoProfile", "-Command", cmd}
}
