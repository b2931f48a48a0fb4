package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestExitCode(t *testing.T) {
	cases := map[string]struct {
		ws   unix.WaitStatus
		want int
	}{
		// Linux encoding: exit code in bits 8-15, signal in bits 0-6.
		"exit-0":  {unix.WaitStatus(0), 0},
		"exit-2":  {unix.WaitStatus(2 << 8), 2},
		"sigterm": {unix.WaitStatus(unix.SIGTERM), 128 + 15},
		"stopped": {unix.WaitStatus(0x7f | unix.SIGSTOP<<8), ExitFailure},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.ws))
		})
	}
}
