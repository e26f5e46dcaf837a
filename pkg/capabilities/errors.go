package capabilities

import "errors"

var (
	// ErrBrowserCreation indicates an unsupported, missing, or mismatched
	// browser selection.
	ErrBrowserCreation = errors.New("browser creation failed")

	// ErrZapConfiguration indicates a malformed intercepting-proxy host.
	ErrZapConfiguration = errors.New("zap proxy configuration invalid")

	// ErrAccessibilityConfiguration indicates that accessibility assessment
	// was requested together with an incompatible browser or mode.
	ErrAccessibilityConfiguration = errors.New("accessibility configuration invalid")
)
