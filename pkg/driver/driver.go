package driver

import (
	"errors"

	"github.com/tebeka/selenium"
)

// Driver is the handle returned for a created browser instance. The caller
// owns its lifecycle and must call Quit when done.
type Driver struct {
	id               string
	wd               selenium.WebDriver
	service          *selenium.Service
	detectLocalFiles bool
}

// ID returns the handle's identifier, used for log correlation.
func (d *Driver) ID() string {
	return d.id
}

// WebDriver exposes the underlying automation session.
func (d *Driver) WebDriver() selenium.WebDriver {
	return d.wd
}

// SetDetectLocalFiles toggles local-file detection. The flag is
// informational: callers interacting with remote file inputs consult it to
// decide whether to transfer local files to the remote end instead of
// passing paths through verbatim. Enabled by default on grid-backed
// instances.
func (d *Driver) SetDetectLocalFiles(enabled bool) {
	d.detectLocalFiles = enabled
}

// DetectsLocalFiles reports whether local-file detection is enabled.
func (d *Driver) DetectsLocalFiles() bool {
	return d.detectLocalFiles
}

// Quit ends the browser session and stops the local driver service, if one
// was started for this instance.
func (d *Driver) Quit() error {
	var errs []error
	if d.wd != nil {
		if err := d.wd.Quit(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.service != nil {
		if err := d.service.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
