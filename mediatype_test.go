package mediatype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEssence(t *testing.T) {
	require.Equal(t, HTML, Essence("text/html; charset=utf8"))
	require.Equal(t, JSON, Essence(JSON))
	require.Empty(t, Essence(""))
}

func TestComplies(t *testing.T) {
	for _, tc := range []string{"", JSON, JSON + ";", JSON + ";param", JSON + "; charset=utf8"} {
		require.True(t, Complies(JSON, tc), tc)
	}

	require.False(t, Complies(JSON, HTML))
	require.False(t, Complies(JSON, HTML+"; charset=utf8"))
}
