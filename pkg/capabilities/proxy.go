package capabilities

import (
	"fmt"
	"regexp"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"
)

// DefaultZapHost is the intercepting-proxy address used when the proxy is
// enabled without an explicit host.
const DefaultZapHost = "localhost:11000"

// chromeLoopbackBypass lets Chrome proxy loopback addresses, which it
// refuses to do by default.
const chromeLoopbackBypass = "<-loopback>"

var zapHostPattern = regexp.MustCompile(`^localhost:\d+$`)

// resolveProxyHost applies the proxy decision table: an explicit host wins
// over the enable flag regardless of the flag's value, a malformed host
// always fails, and with neither source active no proxy is configured.
func (b *Builder) resolveProxyHost() (host string, enabled bool, err error) {
	if h := b.settings.ZapHost; h != "" {
		if !zapHostPattern.MatchString(h) {
			return "", false, fmt.Errorf("%w: host %q must be of the form localhost:<port>", ErrZapConfiguration, h)
		}
		return h, true, nil
	}
	if b.settings.ZapProxy {
		return DefaultZapHost, true, nil
	}
	return "", false, nil
}

// applyProxy injects the intercepting-proxy configuration into the set's
// top-level capabilities. Proxied sessions always accept insecure
// certificates so the proxy can re-sign TLS traffic.
func (b *Builder) applyProxy(set Set) error {
	host, enabled, err := b.resolveProxyHost()
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	proxy := selenium.Proxy{
		Type: selenium.Manual,
		HTTP: host,
		SSL:  host,
	}
	if _, isChrome := set.(*ChromeSet); isChrome {
		proxy.NoProxy = []string{chromeLoopbackBypass}
	}

	base := set.base()
	base.AddProxy(proxy)
	base["acceptInsecureCerts"] = true
	b.log.Info("routing browser traffic through intercepting proxy", zap.String("host", host))
	return nil
}
