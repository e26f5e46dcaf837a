package capabilities

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/entrhq/driverkit/pkg/config"
)

// Preference keys for disabling JavaScript execution.
const (
	chromiumJavaScriptPref = "profile.managed_default_content_settings.javascript"
	firefoxJavaScriptPref  = "javascript.enabled"

	// Chromium content-setting value for "blocked".
	contentSettingBlocked = 2

	firefoxLoopbackProxyPref = "network.proxy.allow_hijacking_localhost"
)

const accessibilityUnsupportedMsg = "accessibility assessment is only supported with Chrome"

// Builder assembles capability sets from a fixed settings snapshot.
type Builder struct {
	settings config.Settings
	log      *zap.Logger
}

// NewBuilder returns a Builder over the given settings. A nil logger is
// replaced with a no-op logger.
func NewBuilder(settings config.Settings, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{settings: settings, log: logger}
}

// Chrome builds the Chrome capability set.
//
// Without an override it starts from the defaults: a maximized window, the
// fixed rendering-workaround arguments, the automation-indicator exclusion,
// and an empty extension list. With an override the caller's arguments are
// authoritative and only proxy configuration and, when enabled, the
// accessibility extension are merged in.
func (b *Builder) Chrome(override *ChromeSet) (*ChromeSet, error) {
	if b.settings.AccessibilityTest && override != nil && override.Headless() {
		return nil, fmt.Errorf("%w: %s", ErrAccessibilityConfiguration, headlessUnsupportedMsg)
	}

	set := override
	if set == nil {
		set = NewChromeSet()
		set.Options.Args = []string{"start-maximized", "--disable-gpu", "--disable-dev-shm-usage"}
		set.Options.ExcludeSwitches = []string{"enable-automation"}
		set.Options.Extensions = []string{}
		if b.settings.DisableJavaScript {
			set.Options.Prefs = map[string]interface{}{chromiumJavaScriptPref: contentSettingBlocked}
			b.log.Info("javascript disabled", zap.String("browser", "chrome"))
		}
	}

	if err := b.applyProxy(set); err != nil {
		return nil, err
	}
	if b.settings.AccessibilityTest {
		if err := b.addAccessibilityExtension(set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Firefox builds the Firefox capability set. Accessibility assessment is
// rejected before anything else.
func (b *Builder) Firefox(override *FirefoxSet) (*FirefoxSet, error) {
	if b.settings.AccessibilityTest {
		return nil, fmt.Errorf("%w: %s", ErrAccessibilityConfiguration, accessibilityUnsupportedMsg)
	}

	set := override
	if set == nil {
		set = NewFirefoxSet()
		set.Base["acceptInsecureCerts"] = true
		set.Options.Prefs = map[string]interface{}{firefoxLoopbackProxyPref: true}
	}

	if err := b.applyProxy(set); err != nil {
		return nil, err
	}

	if override == nil && b.settings.DisableJavaScript {
		set.Options.Prefs[firefoxJavaScriptPref] = false
		b.log.Info("javascript disabled", zap.String("browser", "firefox"))
	}
	return set, nil
}

// Edge builds the Edge capability set. Accessibility assessment is rejected
// before anything else.
func (b *Builder) Edge(override *EdgeSet) (*EdgeSet, error) {
	if b.settings.AccessibilityTest {
		return nil, fmt.Errorf("%w: %s", ErrAccessibilityConfiguration, accessibilityUnsupportedMsg)
	}

	set := override
	if set == nil {
		set = NewEdgeSet()
		if b.settings.DisableJavaScript {
			set.Options.Prefs = map[string]interface{}{chromiumJavaScriptPref: contentSettingBlocked}
			b.log.Info("javascript disabled", zap.String("browser", "edge"))
		}
	}

	if err := b.applyProxy(set); err != nil {
		return nil, err
	}
	return set, nil
}
