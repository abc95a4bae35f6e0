package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapabilityForPosition(t *testing.T) {
	cases := map[string]Capability{
		"chief":      CapabilityChief,
		"Jefe":       CapabilityChief,
		"admin":      CapabilityChief,
		"supervisor": CapabilitySupervisor,
		"Encargado":  CapabilitySupervisor,
		"mechanic":   CapabilityMechanic,
		"Mecánico":   CapabilityMechanic,
		"technician": CapabilityMechanic,
		"intern":     CapabilityNone,
		"":           CapabilityNone,
		"  chief  ":  CapabilityChief,
	}

	for position, want := range cases {
		require.Equal(t, want, CapabilityForPosition(position), "position %q", position)
	}
}

func TestCapabilityAtLeast(t *testing.T) {
	require.True(t, CapabilityChief.AtLeast(CapabilityMechanic))
	require.True(t, CapabilitySupervisor.AtLeast(CapabilitySupervisor))
	require.False(t, CapabilityMechanic.AtLeast(CapabilitySupervisor))
	require.False(t, CapabilityNone.AtLeast(CapabilityMechanic))
}
