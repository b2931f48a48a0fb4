package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapResolver map[string]string

func (m mapResolver) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func TestSubstitute(t *testing.T) {
	vars := mapResolver{"FOO": "bar", "result": "0", "CMD": "ls"}
	cmd := Command{Args: []string{"$CMD", "-l", "$FOO", "x$FOO", "$result"}, OutputFile: "$FOO"}

	got, err := Substitute(cmd, vars, "$")

	assert.NoError(t, err)
	assert.Equal(t, []string{"ls", "-l", "bar", "x$FOO", "0"}, got.Args)
	assert.Equal(t, "ls", got.Name())
	assert.Equal(t, "$FOO", got.OutputFile, "redirection targets aren't substituted")
	assert.Equal(t, "$CMD", cmd.Args[0], "original must be untouched")
}

func TestSubstitute_unresolved(t *testing.T) {
	vars := mapResolver{"FOO": "bar"}
	cmd := Command{Args: []string{"echo", "$FOO", "$MISSING", "$ALSO_MISSING"}}

	got, err := Substitute(cmd, vars, "")

	var unresolved *UnresolvedVariableError
	assert.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "MISSING", unresolved.Name)
	assert.Equal(t, "variable MISSING does not exist", err.Error())
	assert.Empty(t, got.Args)
}

func TestSubstitute_customSigil(t *testing.T) {
	vars := mapResolver{"FOO": "bar"}

	got, err := Substitute(Command{Args: []string{"echo", "@FOO", "$FOO"}}, vars, "@")

	assert.NoError(t, err)
	assert.Equal(t, []string{"echo", "bar", "$FOO"}, got.Args)
}
