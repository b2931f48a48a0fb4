package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDir(t *testing.T) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Chdir(wd)
	})
}

func TestCd(t *testing.T) {
	restoreDir(t)
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	res := runScript(t, "cd "+dir+"\necho $result\npwd\n", nil)

	assert.Equal(t, "0\n"+dir+"\n", res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestCd_home(t *testing.T) {
	restoreDir(t)
	home, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Setenv(EnvHome, home)

	res := runScript(t, "cd\npwd\n", nil)

	assert.Equal(t, home+"\n", res.Stdout)
}

func TestCd_noHome(t *testing.T) {
	restoreDir(t)
	t.Setenv(EnvHome, "")

	res := runScript(t, "cd\necho $result\n", nil)

	assert.Equal(t, "1\n", res.Stdout)
	assert.Equal(t, "resultsh: cd: HOME not set\n", res.Stderr)
}

func TestCd_missing(t *testing.T) {
	restoreDir(t)
	missing := filepath.Join(t.TempDir(), "missing")

	res := runScript(t, "cd "+missing+"\necho $result\n", nil)

	assert.Equal(t, "1\n", res.Stdout)
	assert.Contains(t, res.Stderr, "resultsh: cd: chdir "+missing)
}

func TestIfOk_skipsBuiltins(t *testing.T) {
	restoreDir(t)
	empty := t.TempDir()

	// Only the builtins can run on an empty search path.
	res := runScript(t, "cd "+empty+"\nifok exit 4\nexit 6\n", func(o *Options) {
		o.Path = empty
	})

	assert.Equal(t, 6, res.ExitCode)
	assert.Equal(t, "resultsh: exit: command not found\n", res.Stderr)
}

func TestIfOk_missingCommand(t *testing.T) {
	res := runScript(t, "true\nifok\necho $result\n", nil)

	assert.Equal(t, "1\n", res.Stdout)
	assert.Equal(t, "resultsh: ifok: missing command\n", res.Stderr)
}

func TestIfNot_propagatesStatus(t *testing.T) {
	res := runScript(t, "false\nifnot sh -c \"exit 7\"\necho $result\n", func(o *Options) {
		o.Config.Quoting = true
	})

	assert.Equal(t, "7\n", res.Stdout)
}

func TestExit(t *testing.T) {
	cases := map[string]struct {
		script   string
		wantCode int
		wantErr  string
	}{
		"no argument": {"false\nexit\n", 0, ""},
		"code":        {"exit 42\n", 42, ""},
		"non-numeric": {"exit nope\n", 2, "resultsh: exit: nope: numeric argument required\n"},
		"stops input": {"exit 1\nexit 5\n", 1, ""},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			res := runScript(t, tc.script, nil)

			assert.Equal(t, tc.wantCode, res.ExitCode)
			assert.Equal(t, tc.wantErr, res.Stderr)
			assert.True(t, res.Shell.Quit)
		})
	}
}

func TestAllBuiltins(t *testing.T) {
	for _, name := range []string{"cd", "ifok", "ifnot", "exit"} {
		assert.Contains(t, AllBuiltins, name)
	}
}
