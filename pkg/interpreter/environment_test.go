package interpreter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/nlox/pkg/core/value"
	"github.com/agenthands/nlox/pkg/interpreter"
)

func ptr(v value.Value) *value.Value { return &v }

func TestEnvironmentDeclareLookup(t *testing.T) {
	env := interpreter.NewEnvironment()
	require.NoError(t, env.Declare("a", ptr(value.Int(1))))
	require.NoError(t, env.Declare("b", nil))

	v, err := env.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), v)

	v, err = env.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, value.Null, v)

	_, err = env.Lookup("c")
	assert.ErrorIs(t, err, interpreter.ErrUndefinedVariable)

	err = env.Declare("a", ptr(value.Int(2)))
	assert.ErrorIs(t, err, interpreter.ErrDuplicateDeclaration)
}

func TestEnvironmentShadowing(t *testing.T) {
	env := interpreter.NewEnvironment()
	require.NoError(t, env.Declare("x", ptr(value.Int(1))))

	env.NewScope()
	assert.Equal(t, 2, env.Depth())
	require.NoError(t, env.Declare("x", ptr(value.Int(2))))
	require.NoError(t, env.Assign("x", value.Int(3)))

	v, err := env.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), v)
	assert.Equal(t, map[string]value.Value{"x": value.Int(3)}, env.Snapshot())

	require.NoError(t, env.EndScope())
	v, err = env.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), v)
}

func TestEnvironmentAssignReachesOuterScope(t *testing.T) {
	env := interpreter.NewEnvironment()
	require.NoError(t, env.Declare("n", nil))

	env.NewScope()
	require.NoError(t, env.Assign("n", value.String("set")))
	require.NoError(t, env.EndScope())

	v, err := env.Lookup("n")
	require.NoError(t, err)
	assert.Equal(t, value.String("set"), v)
}

func TestEnvironmentAssignUndeclared(t *testing.T) {
	env := interpreter.NewEnvironment()
	err := env.Assign("ghost", value.Int(1))
	assert.ErrorIs(t, err, interpreter.ErrAssignToUndeclared)
	assert.ErrorIs(t, err, interpreter.ErrUndefinedVariable)
	assert.Empty(t, env.Names())
}

func TestEnvironmentEndScopeWithoutParent(t *testing.T) {
	env := interpreter.NewEnvironment()
	assert.ErrorIs(t, env.EndScope(), interpreter.ErrNoParentScope)
	assert.Equal(t, 1, env.Depth())
}

func TestEnvironmentReset(t *testing.T) {
	env := interpreter.NewEnvironment()
	require.NoError(t, env.Declare("b", nil))
	require.NoError(t, env.Declare("a", nil))
	env.NewScope()
	require.NoError(t, env.Declare("c", nil))
	assert.Equal(t, []string{"a", "b", "c"}, env.Names())

	env.Reset()
	assert.Equal(t, 1, env.Depth())
	assert.Empty(t, env.Names())
	require.NoError(t, env.Declare("a", nil))
}
