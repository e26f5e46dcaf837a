package driver

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/entrhq/driverkit/pkg/capabilities"
	"github.com/entrhq/driverkit/pkg/config"
)

// DefaultGridURL is the local grid endpoint used for the remote-* kinds.
const DefaultGridURL = "http://localhost:4444/wd/hub"

// Default driver binaries and service ports. The binaries are resolved via
// PATH unless overridden.
const (
	defaultChromeDriverPath = "chromedriver"
	defaultGeckoDriverPath  = "geckodriver"
	defaultEdgeDriverPath   = "msedgedriver"

	defaultChromeDriverPort = 9515
	defaultGeckoDriverPort  = 4445
	defaultEdgeDriverPort   = 9415
)

// Factory creates driver instances from a fixed settings snapshot.
type Factory struct {
	settings config.Settings
	caps     *capabilities.Builder
	log      *zap.Logger

	gridURL          string
	chromeDriverPath string
	chromeDriverPort int
	geckoDriverPath  string
	geckoDriverPort  int
	edgeDriverPath   string
	edgeDriverPort   int
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger used by the factory and its capability builder.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.log = logger
		}
	}
}

// WithGridURL overrides the remote grid endpoint.
func WithGridURL(url string) Option {
	return func(f *Factory) { f.gridURL = url }
}

// WithChromeDriver overrides the chromedriver binary and service port.
func WithChromeDriver(path string, port int) Option {
	return func(f *Factory) {
		f.chromeDriverPath = path
		f.chromeDriverPort = port
	}
}

// WithGeckoDriver overrides the geckodriver binary and service port.
func WithGeckoDriver(path string, port int) Option {
	return func(f *Factory) {
		f.geckoDriverPath = path
		f.geckoDriverPort = port
	}
}

// WithEdgeDriver overrides the msedgedriver binary and service port.
func WithEdgeDriver(path string, port int) Option {
	return func(f *Factory) {
		f.edgeDriverPath = path
		f.edgeDriverPort = port
	}
}

// New returns a Factory over the given settings.
func New(settings config.Settings, opts ...Option) *Factory {
	f := &Factory{
		settings:         settings,
		log:              zap.NewNop(),
		gridURL:          DefaultGridURL,
		chromeDriverPath: defaultChromeDriverPath,
		chromeDriverPort: defaultChromeDriverPort,
		geckoDriverPath:  defaultGeckoDriverPath,
		geckoDriverPort:  defaultGeckoDriverPort,
		edgeDriverPath:   defaultEdgeDriverPath,
		edgeDriverPort:   defaultEdgeDriverPort,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.caps = capabilities.NewBuilder(settings, f.log)
	return f
}

// Create builds the capability set for the given kind and requests a driver
// instance from the automation library.
func (f *Factory) Create(kind Kind) (*Driver, error) {
	return f.CreateWith(kind, nil)
}

// CreateWith is Create with a caller-supplied capability override. The
// override's concrete type must match the requested kind.
func (f *Factory) CreateWith(kind Kind, override capabilities.Set) (*Driver, error) {
	caps, err := f.assemble(kind, override)
	if err != nil {
		return nil, err
	}

	switch kind {
	case Chrome, HeadlessChrome:
		return f.localInstance(caps, f.chromeDriverPath, f.chromeDriverPort, selenium.NewChromeDriverService)
	case Firefox:
		d, err := f.localInstance(caps, f.geckoDriverPath, f.geckoDriverPort, f.newGeckoDriverService)
		if err != nil {
			return nil, err
		}
		if err := d.wd.MaximizeWindow(""); err != nil {
			d.Quit()
			return nil, fmt.Errorf("maximizing firefox window: %w", err)
		}
		return d, nil
	case Edge:
		// msedgedriver speaks the chromedriver protocol.
		return f.localInstance(caps, f.edgeDriverPath, f.edgeDriverPort, selenium.NewChromeDriverService)
	case RemoteChrome, RemoteFirefox, RemoteEdge:
		return f.remoteInstance(caps)
	case BrowserStack:
		return f.browserStackInstance(caps)
	default:
		// assemble already rejected unknown kinds.
		return nil, fmt.Errorf("%w: browser type %q not supported", capabilities.ErrBrowserCreation, kind)
	}
}

// assemble resolves the capability set for a kind, validating the override's
// type against it. All configuration failures surface here, before any
// process or network instantiation.
func (f *Factory) assemble(kind Kind, override capabilities.Set) (selenium.Capabilities, error) {
	switch kind {
	case Chrome, RemoteChrome:
		cs, err := chromeOverride(override)
		if err != nil {
			return nil, err
		}
		set, err := f.caps.Chrome(cs)
		if err != nil {
			return nil, err
		}
		return set.Capabilities(), nil

	case HeadlessChrome:
		cs, err := chromeOverride(override)
		if err != nil {
			return nil, err
		}
		// Headless is guaranteed on this path, so reject accessibility
		// assessment before building anything.
		if f.settings.AccessibilityTest {
			return nil, fmt.Errorf("%w: Headless Chrome not supported with accessibility-assessment tests.", capabilities.ErrAccessibilityConfiguration)
		}
		set, err := f.caps.Chrome(cs)
		if err != nil {
			return nil, err
		}
		if !set.Headless() {
			set.Options.Args = append(set.Options.Args, "--headless")
		}
		return set.Capabilities(), nil

	case Firefox, RemoteFirefox:
		fs, err := firefoxOverride(override)
		if err != nil {
			return nil, err
		}
		set, err := f.caps.Firefox(fs)
		if err != nil {
			return nil, err
		}
		return set.Capabilities(), nil

	case Edge, RemoteEdge:
		es, err := edgeOverride(override)
		if err != nil {
			return nil, err
		}
		set, err := f.caps.Edge(es)
		if err != nil {
			return nil, err
		}
		return set.Capabilities(), nil

	case BrowserStack:
		return f.browserStackCapabilities()

	default:
		if _, err := ParseKind(string(kind)); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: browser type %q not supported", capabilities.ErrBrowserCreation, kind)
	}
}

func chromeOverride(override capabilities.Set) (*capabilities.ChromeSet, error) {
	if override == nil {
		return nil, nil
	}
	set, ok := override.(*capabilities.ChromeSet)
	if !ok {
		return nil, fmt.Errorf("%w: override is %T, chrome kinds require *capabilities.ChromeSet", capabilities.ErrBrowserCreation, override)
	}
	return set, nil
}

func firefoxOverride(override capabilities.Set) (*capabilities.FirefoxSet, error) {
	if override == nil {
		return nil, nil
	}
	set, ok := override.(*capabilities.FirefoxSet)
	if !ok {
		return nil, fmt.Errorf("%w: override is %T, firefox kinds require *capabilities.FirefoxSet", capabilities.ErrBrowserCreation, override)
	}
	return set, nil
}

func edgeOverride(override capabilities.Set) (*capabilities.EdgeSet, error) {
	if override == nil {
		return nil, nil
	}
	set, ok := override.(*capabilities.EdgeSet)
	if !ok {
		return nil, fmt.Errorf("%w: override is %T, edge kinds require *capabilities.EdgeSet", capabilities.ErrBrowserCreation, override)
	}
	return set, nil
}

// newGeckoDriverService starts geckodriver with its log output redirected to
// a null sink; geckodriver is noisy on stderr by default.
func (f *Factory) newGeckoDriverService(path string, port int, opts ...selenium.ServiceOption) (*selenium.Service, error) {
	opts = append(opts, selenium.Output(io.Discard))
	return selenium.NewGeckoDriverService(path, port, opts...)
}

type serviceConstructor func(path string, port int, opts ...selenium.ServiceOption) (*selenium.Service, error)

func (f *Factory) localInstance(caps selenium.Capabilities, path string, port int, newService serviceConstructor) (*Driver, error) {
	service, err := newService(path, port)
	if err != nil {
		return nil, fmt.Errorf("starting driver service %s: %w", path, err)
	}

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d", port))
	if err != nil {
		service.Stop()
		return nil, fmt.Errorf("creating driver session: %w", err)
	}
	return f.newDriver(wd, service, caps), nil
}

func (f *Factory) remoteInstance(caps selenium.Capabilities) (*Driver, error) {
	wd, err := selenium.NewRemote(caps, f.gridURL)
	if err != nil {
		return nil, fmt.Errorf("creating remote driver session against %s: %w", f.gridURL, err)
	}
	d := f.newDriver(wd, nil, caps)
	d.SetDetectLocalFiles(true)
	return d, nil
}

func (f *Factory) newDriver(wd selenium.WebDriver, service *selenium.Service, caps selenium.Capabilities) *Driver {
	d := &Driver{id: uuid.NewString(), wd: wd, service: service}
	f.log.Info("driver created",
		zap.String("driver_id", d.id),
		zap.Any("browser", caps["browserName"]))
	return d
}
