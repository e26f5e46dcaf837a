package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"github.com/entrhq/driverkit/pkg/capabilities"
	"github.com/entrhq/driverkit/pkg/config"
)

func chromeOptionsFrom(t *testing.T, caps selenium.Capabilities) chrome.Capabilities {
	t.Helper()
	opts, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	require.True(t, ok, "missing %s", chrome.CapabilitiesKey)
	return opts
}

func TestAssembleChrome(t *testing.T) {
	t.Run("local and remote kinds share the builder", func(t *testing.T) {
		f := New(config.Settings{})

		for _, kind := range []Kind{Chrome, RemoteChrome} {
			caps, err := f.assemble(kind, nil)
			require.NoError(t, err)
			assert.Equal(t, "chrome", caps["browserName"])
			opts := chromeOptionsFrom(t, caps)
			assert.Contains(t, opts.Args, "start-maximized")
		}
	})

	t.Run("override type must match the kind", func(t *testing.T) {
		f := New(config.Settings{})

		_, err := f.assemble(Chrome, capabilities.NewFirefoxSet())
		assert.ErrorIs(t, err, capabilities.ErrBrowserCreation)

		_, err = f.assemble(Firefox, capabilities.NewChromeSet())
		assert.ErrorIs(t, err, capabilities.ErrBrowserCreation)

		_, err = f.assemble(RemoteEdge, capabilities.NewChromeSet())
		assert.ErrorIs(t, err, capabilities.ErrBrowserCreation)
	})
}

func TestAssembleHeadlessChrome(t *testing.T) {
	t.Run("appends the headless argument to the defaults", func(t *testing.T) {
		f := New(config.Settings{})

		caps, err := f.assemble(HeadlessChrome, nil)
		require.NoError(t, err)
		opts := chromeOptionsFrom(t, caps)
		assert.Contains(t, opts.Args, "--headless")
		assert.Contains(t, opts.Args, "start-maximized")
	})

	t.Run("keeps a caller-supplied headless argument", func(t *testing.T) {
		f := New(config.Settings{})
		override := &capabilities.ChromeSet{
			Options: chrome.Capabilities{Args: []string{"--headless=new"}},
		}

		caps, err := f.assemble(HeadlessChrome, override)
		require.NoError(t, err)
		opts := chromeOptionsFrom(t, caps)
		assert.Equal(t, []string{"--headless=new"}, opts.Args)
	})

	t.Run("rejects accessibility assessment before instantiation", func(t *testing.T) {
		f := New(config.Settings{AccessibilityTest: true})

		_, err := f.assemble(HeadlessChrome, nil)
		assert.ErrorIs(t, err, capabilities.ErrAccessibilityConfiguration)

		_, err = f.CreateWith(HeadlessChrome, nil)
		assert.ErrorIs(t, err, capabilities.ErrAccessibilityConfiguration)
	})
}

func TestAssembleFirefoxAndEdge(t *testing.T) {
	t.Run("firefox defaults", func(t *testing.T) {
		f := New(config.Settings{})

		caps, err := f.assemble(Firefox, nil)
		require.NoError(t, err)
		assert.Equal(t, "firefox", caps["browserName"])
		assert.Equal(t, true, caps["acceptInsecureCerts"])
	})

	t.Run("edge carries the vendor options key", func(t *testing.T) {
		f := New(config.Settings{})

		caps, err := f.assemble(RemoteEdge, nil)
		require.NoError(t, err)
		assert.Equal(t, "MicrosoftEdge", caps["browserName"])
		assert.Contains(t, caps, capabilities.EdgeOptionsKey)
	})

	t.Run("accessibility assessment is rejected", func(t *testing.T) {
		f := New(config.Settings{AccessibilityTest: true})

		for _, kind := range []Kind{Firefox, RemoteFirefox, Edge, RemoteEdge} {
			_, err := f.assemble(kind, nil)
			assert.ErrorIs(t, err, capabilities.ErrAccessibilityConfiguration, "kind %s", kind)
		}
	})
}

func TestAssembleProxyPropagation(t *testing.T) {
	f := New(config.Settings{ZapHost: "localhost:8080"})

	caps, err := f.assemble(RemoteChrome, nil)
	require.NoError(t, err)
	proxy, ok := caps["proxy"].(selenium.Proxy)
	require.True(t, ok)
	assert.Equal(t, "localhost:8080", proxy.HTTP)

	f = New(config.Settings{ZapHost: "localhost:abcd"})
	_, err = f.assemble(RemoteChrome, nil)
	assert.ErrorIs(t, err, capabilities.ErrZapConfiguration)
}

func TestCreateWithUnknownKind(t *testing.T) {
	f := New(config.Settings{})

	_, err := f.CreateWith(Kind("safari"), nil)
	assert.ErrorIs(t, err, capabilities.ErrBrowserCreation)
	assert.ErrorContains(t, err, "not supported")

	_, err = f.CreateWith(Kind(""), nil)
	assert.ErrorIs(t, err, capabilities.ErrBrowserCreation)
	assert.ErrorContains(t, err, "not set")
}

func TestFactoryOptions(t *testing.T) {
	f := New(config.Settings{},
		WithGridURL("http://grid.internal:4444/wd/hub"),
		WithChromeDriver("/opt/chromedriver", 9600),
		WithGeckoDriver("/opt/geckodriver", 4500),
		WithEdgeDriver("/opt/msedgedriver", 9700),
	)

	assert.Equal(t, "http://grid.internal:4444/wd/hub", f.gridURL)
	assert.Equal(t, "/opt/chromedriver", f.chromeDriverPath)
	assert.Equal(t, 9600, f.chromeDriverPort)
	assert.Equal(t, "/opt/geckodriver", f.geckoDriverPath)
	assert.Equal(t, 4500, f.geckoDriverPort)
	assert.Equal(t, "/opt/msedgedriver", f.edgeDriverPath)
	assert.Equal(t, 9700, f.edgeDriverPort)
}

func TestDriverLocalFileDetection(t *testing.T) {
	d := &Driver{}
	assert.False(t, d.DetectsLocalFiles())
	d.SetDetectLocalFiles(true)
	assert.True(t, d.DetectsLocalFiles())
}
