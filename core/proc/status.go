package proc

import "golang.org/x/sys/unix"

// Exit codes assigned by the interpreter itself.
const (
	ExitSuccess = 0
	ExitFailure = 1

	// signalBase is added to the signal number of a killed child.
	signalBase = 128
)

// ExitCode maps a wait status to the command's exit status. Children killed
// by a signal map to 128 plus the signal number.
func ExitCode(ws unix.WaitStatus) int {
	switch {
	case ws.Exited():
		return ws.ExitStatus()
	case ws.Signaled():
		return signalBase + int(ws.Signal())
	default:
		return ExitFailure
	}
}
