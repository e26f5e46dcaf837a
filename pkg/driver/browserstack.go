package driver

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/entrhq/driverkit/pkg/capabilities"
)

const browserStackHubHost = "hub.browserstack.com"

// browserStackCapabilities assembles the cloud-grid capability set: the two
// fixed debug/local toggles plus every configured passthrough entry, with
// underscores turned into spaces in both key and value (the flag surface
// cannot carry spaces).
func (f *Factory) browserStackCapabilities() (selenium.Capabilities, error) {
	bs := f.settings.BrowserStack
	if bs.Username == "" {
		return nil, fmt.Errorf("%w: browserstack.username is not set, this is required", capabilities.ErrBrowserCreation)
	}
	if bs.Key == "" {
		return nil, fmt.Errorf("%w: browserstack.key is not set, this is required", capabilities.ErrBrowserCreation)
	}

	caps := selenium.Capabilities{
		"browserstack.debug": "true",
		"browserstack.local": "true",
	}
	for key, value := range bs.Extra {
		if value == "" {
			continue
		}
		caps[strings.ReplaceAll(key, "_", " ")] = strings.ReplaceAll(value, "_", " ")
	}
	return caps, nil
}

// browserStackURL embeds the credentials in the hub endpoint.
func (f *Factory) browserStackURL() string {
	u := url.URL{
		Scheme: "http",
		User:   url.UserPassword(f.settings.BrowserStack.Username, f.settings.BrowserStack.Key),
		Host:   browserStackHubHost,
		Path:   "/wd/hub",
	}
	return u.String()
}

func (f *Factory) browserStackInstance(caps selenium.Capabilities) (*Driver, error) {
	f.log.Info("creating browserstack session",
		zap.String("user", f.settings.BrowserStack.Username))

	wd, err := selenium.NewRemote(caps, f.browserStackURL())
	if err != nil {
		return nil, fmt.Errorf("creating browserstack session: %w", err)
	}
	return f.newDriver(wd, nil, caps), nil
}
