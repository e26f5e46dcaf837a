package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/driverkit/pkg/capabilities"
)

func TestParseKind(t *testing.T) {
	t.Run("accepts every supported kind", func(t *testing.T) {
		for _, kind := range []Kind{
			Chrome, Firefox, Edge,
			RemoteChrome, RemoteFirefox, RemoteEdge,
			HeadlessChrome, BrowserStack,
		} {
			parsed, err := ParseKind(string(kind))
			require.NoError(t, err)
			assert.Equal(t, kind, parsed)
		}
	})

	t.Run("empty selector is required", func(t *testing.T) {
		_, err := ParseKind("")
		assert.ErrorIs(t, err, capabilities.ErrBrowserCreation)
		assert.ErrorContains(t, err, "not set")
	})

	t.Run("unknown selector is unsupported", func(t *testing.T) {
		_, err := ParseKind("safari")
		assert.ErrorIs(t, err, capabilities.ErrBrowserCreation)
		assert.ErrorContains(t, err, "not supported")
	})
}
