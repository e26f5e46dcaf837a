package capabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"

	"github.com/entrhq/driverkit/pkg/config"
)

func TestResolveProxyHost(t *testing.T) {
	tests := []struct {
		name        string
		settings    config.Settings
		wantHost    string
		wantEnabled bool
		wantErr     error
	}{
		{
			name:        "explicit host wins regardless of the flag",
			settings:    config.Settings{ZapHost: "localhost:8080", ZapProxy: false},
			wantHost:    "localhost:8080",
			wantEnabled: true,
		},
		{
			name:        "explicit host wins over an enabled flag",
			settings:    config.Settings{ZapHost: "localhost:9999", ZapProxy: true},
			wantHost:    "localhost:9999",
			wantEnabled: true,
		},
		{
			name:     "malformed host fails",
			settings: config.Settings{ZapHost: "localhost:abcd"},
			wantErr:  ErrZapConfiguration,
		},
		{
			name:     "remote hosts are rejected",
			settings: config.Settings{ZapHost: "proxy.example.com:8080"},
			wantErr:  ErrZapConfiguration,
		},
		{
			name:        "flag alone uses the default host",
			settings:    config.Settings{ZapProxy: true},
			wantHost:    DefaultZapHost,
			wantEnabled: true,
		},
		{
			name:     "nothing set means no proxy",
			settings: config.Settings{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(tt.settings, nil)
			host, enabled, err := b.resolveProxyHost()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnabled, enabled)
			assert.Equal(t, tt.wantHost, host)
		})
	}
}

func TestApplyProxyPerBrowser(t *testing.T) {
	t.Run("chrome gets the loopback bypass", func(t *testing.T) {
		b := NewBuilder(config.Settings{ZapHost: "localhost:8080"}, nil)

		set, err := b.Chrome(nil)
		require.NoError(t, err)

		proxy, ok := set.Base["proxy"].(selenium.Proxy)
		require.True(t, ok)
		assert.Equal(t, selenium.ProxyType(selenium.Manual), proxy.Type)
		assert.Equal(t, "localhost:8080", proxy.HTTP)
		assert.Equal(t, "localhost:8080", proxy.SSL)
		assert.Equal(t, []string{"<-loopback>"}, proxy.NoProxy)
		assert.Equal(t, true, set.Base["acceptInsecureCerts"])
	})

	t.Run("firefox leaves the bypass empty", func(t *testing.T) {
		b := NewBuilder(config.Settings{ZapProxy: true}, nil)

		set, err := b.Firefox(nil)
		require.NoError(t, err)

		proxy, ok := set.Base["proxy"].(selenium.Proxy)
		require.True(t, ok)
		assert.Equal(t, DefaultZapHost, proxy.HTTP)
		assert.Empty(t, proxy.NoProxy)
		assert.Equal(t, true, set.Base["acceptInsecureCerts"])
	})

	t.Run("no flags means no proxy key on any browser", func(t *testing.T) {
		b := NewBuilder(config.Settings{}, nil)

		chromeSet, err := b.Chrome(nil)
		require.NoError(t, err)
		assert.NotContains(t, chromeSet.Capabilities(), "proxy")

		firefoxSet, err := b.Firefox(nil)
		require.NoError(t, err)
		assert.NotContains(t, firefoxSet.Capabilities(), "proxy")

		edgeSet, err := b.Edge(nil)
		require.NoError(t, err)
		assert.NotContains(t, edgeSet.Capabilities(), "proxy")
	})
}
