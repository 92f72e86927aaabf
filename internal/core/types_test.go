package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAutomaton struct{ Automaton }

func TestRegistry(t *testing.T) {
	Register("zz-test", func(map[string]string) (Automaton, error) { return nopAutomaton{}, nil })
	Register("", func(map[string]string) (Automaton, error) { return nil, nil })
	Register("zz-nil", nil)
	t.Cleanup(func() { delete(automata, "zz-test") })

	assert.Contains(t, Names(), "zz-test")
	assert.NotContains(t, Names(), "")
	assert.NotContains(t, Names(), "zz-nil")

	a, err := Open("zz-test", nil)
	require.NoError(t, err)
	assert.Equal(t, nopAutomaton{}, a)

	_, err = Open("absent", nil)
	assert.ErrorContains(t, err, "zz-test")
}
