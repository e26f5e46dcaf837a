// Package capabilities assembles WebDriver capability sets for the supported
// browsers, layering defaults, proxy configuration, and feature toggles on
// top of optional caller-supplied overrides.
package capabilities

import (
	"strings"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// EdgeOptionsKey is the vendor-namespaced options key for Chromium Edge.
// The selenium client has no Edge helper, so the options are attached to the
// capability map directly.
const EdgeOptionsKey = "ms:edgeOptions"

// EdgeOptions mirrors the subset of ms:edgeOptions this package sets.
type EdgeOptions struct {
	Args  []string               `json:"args,omitempty"`
	Prefs map[string]interface{} `json:"prefs,omitempty"`
}

// Set is the closed union of per-browser capability sets. Each member merges
// its vendor options into a fresh selenium capability map on every
// Capabilities call, so caller-set keys are never dropped.
type Set interface {
	// Capabilities returns the merged capability map to hand to the
	// automation client.
	Capabilities() selenium.Capabilities

	// base returns the top-level capability map, creating it on first use.
	// Unexported so the union stays closed to the three browser sets.
	base() selenium.Capabilities
}

// ChromeSet is the capability set for Chrome.
type ChromeSet struct {
	// Base holds top-level capabilities (browserName, proxy,
	// acceptInsecureCerts, ...).
	Base selenium.Capabilities

	// Options holds the goog:chromeOptions payload.
	Options chrome.Capabilities
}

// NewChromeSet returns an empty Chrome capability set.
func NewChromeSet() *ChromeSet {
	return &ChromeSet{Base: selenium.Capabilities{}}
}

func (s *ChromeSet) base() selenium.Capabilities {
	if s.Base == nil {
		s.Base = selenium.Capabilities{}
	}
	return s.Base
}

// Capabilities merges the vendor options into a fresh capability map.
func (s *ChromeSet) Capabilities() selenium.Capabilities {
	out := cloneBase(s.base())
	if _, ok := out["browserName"]; !ok {
		out["browserName"] = "chrome"
	}
	out.AddChrome(s.Options)
	return out
}

// Headless reports whether the rendering arguments request headless mode.
func (s *ChromeSet) Headless() bool {
	return hasHeadlessArg(s.Options.Args)
}

// FirefoxSet is the capability set for Firefox.
type FirefoxSet struct {
	// Base holds top-level capabilities.
	Base selenium.Capabilities

	// Options holds the moz:firefoxOptions payload.
	Options firefox.Capabilities
}

// NewFirefoxSet returns an empty Firefox capability set.
func NewFirefoxSet() *FirefoxSet {
	return &FirefoxSet{Base: selenium.Capabilities{}}
}

func (s *FirefoxSet) base() selenium.Capabilities {
	if s.Base == nil {
		s.Base = selenium.Capabilities{}
	}
	return s.Base
}

// Capabilities merges the vendor options into a fresh capability map.
func (s *FirefoxSet) Capabilities() selenium.Capabilities {
	out := cloneBase(s.base())
	if _, ok := out["browserName"]; !ok {
		out["browserName"] = "firefox"
	}
	out.AddFirefox(s.Options)
	return out
}

// EdgeSet is the capability set for Chromium Edge.
type EdgeSet struct {
	// Base holds top-level capabilities.
	Base selenium.Capabilities

	// Options holds the ms:edgeOptions payload.
	Options EdgeOptions
}

// NewEdgeSet returns an empty Edge capability set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{Base: selenium.Capabilities{}}
}

func (s *EdgeSet) base() selenium.Capabilities {
	if s.Base == nil {
		s.Base = selenium.Capabilities{}
	}
	return s.Base
}

// Capabilities merges the vendor options into a fresh capability map.
func (s *EdgeSet) Capabilities() selenium.Capabilities {
	out := cloneBase(s.base())
	if _, ok := out["browserName"]; !ok {
		out["browserName"] = "MicrosoftEdge"
	}
	out[EdgeOptionsKey] = s.Options
	return out
}

func cloneBase(base selenium.Capabilities) selenium.Capabilities {
	out := make(selenium.Capabilities, len(base)+2)
	for k, v := range base {
		out[k] = v
	}
	return out
}

func hasHeadlessArg(args []string) bool {
	for _, arg := range args {
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == "headless" || strings.HasPrefix(trimmed, "headless=") {
			return true
		}
	}
	return false
}
