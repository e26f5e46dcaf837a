// Package config resolves the settings that drive capability assembly.
//
// Settings are an explicit snapshot: they are resolved once, from dotted
// properties and/or the process environment, and handed to the builders.
// The builders themselves never read the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dotted property keys, matching the flag surface consumed by test runners.
const (
	PropZapProxy             = "zap.proxy"
	PropAccessibilityTest    = "accessibility.test"
	PropDisableJavaScript    = "disable.javascript"
	PropBrowserStackUsername = "browserstack.username"
	PropBrowserStackKey      = "browserstack.key"

	// PropBrowserStackPrefix marks passthrough BrowserStack capabilities.
	PropBrowserStackPrefix = "browserstack."
)

// Environment variable names. ZAP_HOST and ACCESSIBILITY_TEST take precedence
// over their property counterparts when present.
const (
	EnvZapProxy               = "ZAP_PROXY"
	EnvZapHost                = "ZAP_HOST"
	EnvAccessibilityTest      = "ACCESSIBILITY_TEST"
	EnvDisableJavaScript      = "DISABLE_JAVASCRIPT"
	EnvAccessibilityExtension = "ACCESSIBILITY_EXTENSION"
	EnvBrowserStackUsername   = "BROWSERSTACK_USERNAME"
	EnvBrowserStackKey        = "BROWSERSTACK_KEY"

	// EnvBrowserStackPrefix marks passthrough BrowserStack capabilities in
	// the environment; the remainder of the name is lowercased and used as
	// the passthrough key.
	EnvBrowserStackPrefix = "BROWSERSTACK_"
)

// BrowserStack holds the cloud-grid credentials and passthrough capabilities.
type BrowserStack struct {
	// Username is the BrowserStack account name. Required for the
	// browserstack browser kind.
	Username string `yaml:"username"`

	// Key is the BrowserStack access key. Required for the browserstack
	// browser kind.
	Key string `yaml:"key"`

	// Extra carries passthrough capabilities, keyed by the property name
	// with the browserstack. prefix stripped (e.g. "os_version").
	Extra map[string]string `yaml:"extra"`
}

// Settings is the full configuration consumed by the capability builders and
// the driver factory.
type Settings struct {
	// ZapProxy routes browser traffic through the default intercepting
	// proxy host when no explicit host is configured.
	ZapProxy bool `yaml:"zap_proxy"`

	// ZapHost is an explicit intercepting-proxy address of the form
	// localhost:<port>. When set it wins over ZapProxy.
	ZapHost string `yaml:"zap_host"`

	// AccessibilityTest installs the accessibility-assessment extension.
	// Only supported with non-headless Chrome.
	AccessibilityTest bool `yaml:"accessibility_test"`

	// DisableJavaScript turns off JavaScript execution in the browser.
	DisableJavaScript bool `yaml:"disable_javascript"`

	// AccessibilityExtension is the path to the packaged accessibility
	// extension (.crx). Empty means the built-in default path.
	AccessibilityExtension string `yaml:"accessibility_extension"`

	// BrowserStack configures the cloud-grid path.
	BrowserStack BrowserStack `yaml:"browserstack"`
}

// FromEnv resolves Settings from the process environment alone.
func FromEnv() Settings {
	return Resolve(nil)
}

// Resolve builds Settings from a dotted-property map overlaid with the
// process environment. Environment values win where both are present.
func Resolve(props map[string]string) Settings {
	var s Settings
	s.applyProperties(props)
	s.applyEnv()
	return s
}

// LoadFile reads Settings from a YAML file without consulting the
// environment.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings file: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return s, nil
}

// Load reads Settings from a YAML file and overlays the process environment
// on top of it.
func Load(path string) (Settings, error) {
	s, err := LoadFile(path)
	if err != nil {
		return Settings{}, err
	}
	s.applyEnv()
	return s, nil
}

func (s *Settings) applyProperties(props map[string]string) {
	if props == nil {
		return
	}

	// zap.proxy is truthy only when it is exactly "true".
	s.ZapProxy = props[PropZapProxy] == "true"
	s.AccessibilityTest = parseBool(props[PropAccessibilityTest])
	s.DisableJavaScript = parseBool(props[PropDisableJavaScript])
	s.BrowserStack.Username = props[PropBrowserStackUsername]
	s.BrowserStack.Key = props[PropBrowserStackKey]

	for key, value := range props {
		if !strings.HasPrefix(key, PropBrowserStackPrefix) || value == "" {
			continue
		}
		s.addBrowserStackExtra(strings.TrimPrefix(key, PropBrowserStackPrefix), value)
	}
}

func (s *Settings) applyEnv() {
	if v, ok := os.LookupEnv(EnvZapProxy); ok {
		// Truthy only when exactly "true", same rule as the property.
		s.ZapProxy = v == "true"
	}
	if v := os.Getenv(EnvZapHost); v != "" {
		s.ZapHost = v
	}
	if v, ok := os.LookupEnv(EnvAccessibilityTest); ok {
		s.AccessibilityTest = parseBool(v)
	}
	if v, ok := os.LookupEnv(EnvDisableJavaScript); ok {
		s.DisableJavaScript = parseBool(v)
	}
	if v := os.Getenv(EnvAccessibilityExtension); v != "" {
		s.AccessibilityExtension = v
	}
	if v := os.Getenv(EnvBrowserStackUsername); v != "" {
		s.BrowserStack.Username = v
	}
	if v := os.Getenv(EnvBrowserStackKey); v != "" {
		s.BrowserStack.Key = v
	}

	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" || !strings.HasPrefix(key, EnvBrowserStackPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvBrowserStackPrefix))
		s.addBrowserStackExtra(name, value)
	}
}

func (s *Settings) addBrowserStackExtra(name, value string) {
	if s.BrowserStack.Extra == nil {
		s.BrowserStack.Extra = make(map[string]string)
	}
	s.BrowserStack.Extra[name] = value
}

// parseBool treats unparseable or absent values as false, so an unset flag
// behaves exactly like an explicit "false".
func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
