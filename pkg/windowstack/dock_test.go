package windowstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

func TestDockTargetParse(t *testing.T) {
	for in, want := range map[string]windowstack.DockTarget{
		"center": windowstack.DockCenter,
		"Left":   windowstack.DockLeft,
		" right": windowstack.DockRight,
	} {
		got, err := windowstack.ParseDockTarget(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.True(t, got.Valid())
	}

	_, err := windowstack.ParseDockTarget("top")
	assert.Error(t, err)
	assert.Equal(t, "DockTarget(999)", windowstack.DockTarget(999).String())
	assert.False(t, windowstack.DockTarget(999).Valid())
}
