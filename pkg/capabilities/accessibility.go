package capabilities

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultAccessibilityExtension is the path of the packaged
// accessibility-assessment extension when none is configured.
const DefaultAccessibilityExtension = "extensions/accessibility.crx"

const headlessUnsupportedMsg = "Headless Chrome not supported with accessibility-assessment tests."

// addAccessibilityExtension installs the packaged accessibility extension
// into a Chrome capability set. Headless mode is rejected first: the
// extension cannot run without a rendering surface.
func (b *Builder) addAccessibilityExtension(set *ChromeSet) error {
	if set.Headless() {
		return fmt.Errorf("%w: %s", ErrAccessibilityConfiguration, headlessUnsupportedMsg)
	}

	path := b.settings.AccessibilityExtension
	if path == "" {
		path = DefaultAccessibilityExtension
	}
	if err := set.Options.AddExtension(path); err != nil {
		return fmt.Errorf("%w: loading accessibility extension from %s: %v", ErrAccessibilityConfiguration, path, err)
	}
	b.log.Info("installed accessibility-assessment extension",
		zap.String("browser", "chrome"),
		zap.String("extension", path))
	return nil
}
