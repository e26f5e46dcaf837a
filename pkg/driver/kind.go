// Package driver creates browser driver instances from assembled capability
// sets, dispatching on the requested browser kind.
package driver

import (
	"fmt"

	"github.com/entrhq/driverkit/pkg/capabilities"
)

// Kind selects the browser and instantiation path.
type Kind string

// The supported browser kinds.
const (
	Chrome         Kind = "chrome"
	Firefox        Kind = "firefox"
	Edge           Kind = "edge"
	RemoteChrome   Kind = "remote-chrome"
	RemoteFirefox  Kind = "remote-firefox"
	RemoteEdge     Kind = "remote-edge"
	HeadlessChrome Kind = "headless-chrome"
	BrowserStack   Kind = "browserstack"
)

// ParseKind validates a browser-kind selector.
func ParseKind(s string) (Kind, error) {
	switch kind := Kind(s); kind {
	case Chrome, Firefox, Edge, RemoteChrome, RemoteFirefox, RemoteEdge, HeadlessChrome, BrowserStack:
		return kind, nil
	case "":
		return "", fmt.Errorf("%w: browser type is not set, this is required", capabilities.ErrBrowserCreation)
	default:
		return "", fmt.Errorf("%w: browser type %q not supported", capabilities.ErrBrowserCreation, s)
	}
}
