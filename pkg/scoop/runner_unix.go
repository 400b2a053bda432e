//go:build !windows

package scoop

// shellInvocation executes the binary directly on non-Windows systems
// (useful under WSL and in development).
func shellInvocation(binary string, args []string) (string, []string) {
	return binary, args
}
