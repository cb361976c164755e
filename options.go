package giiker

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mlowell/giiker_trigger/internal/trigger"
)

// Pulser drives the output line raised while the cube is solved.
type Pulser = trigger.Pulser

// Defaults
const (
	// DefaultAddress is the hardware address of the one cube this system
	// connects to. Advertisements from any other address are ignored.
	DefaultAddress = "CD:59:03:D3:8F:D0"

	DefaultHoldDuration   = 5 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultUARTName       = "GiikerTrigger"
)

// Option configures a Session.
type Option func(*config)

type config struct {
	address        string
	connectTimeout time.Duration
	hold           time.Duration
	uartEnabled    bool
	uartName       string
	solveLogPath   string
	pulser         Pulser
	gpioPin        int
	logger         *logrus.Logger
}

func defaultConfig() *config {
	return &config{
		address:        DefaultAddress,
		connectTimeout: DefaultConnectTimeout,
		hold:           DefaultHoldDuration,
		uartEnabled:    true,
		uartName:       DefaultUARTName,
		gpioPin:        -1,
		logger:         logrus.StandardLogger(),
	}
}

// WithAddress sets the peer hardware address to scan for.
func WithAddress(addr string) Option {
	return func(c *config) {
		c.address = addr
	}
}

// WithConnectTimeout bounds each connect attempt.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *config) {
		c.connectTimeout = d
	}
}

// WithHoldDuration sets how long the output line stays high after a solve.
func WithHoldDuration(d time.Duration) Option {
	return func(c *config) {
		c.hold = d
	}
}

// WithUART enables or disables the pass-through UART service (default on).
func WithUART(enabled bool) Option {
	return func(c *config) {
		c.uartEnabled = enabled
	}
}

// WithUARTName sets the local name the UART service advertises under.
func WithUARTName(name string) Option {
	return func(c *config) {
		c.uartName = name
	}
}

// WithSolveLog records solved events in a SQLite database at path.
func WithSolveLog(path string) Option {
	return func(c *config) {
		c.solveLogPath = path
	}
}

// WithPulser sets the output implementation. The default pulser only logs.
func WithPulser(p Pulser) Option {
	return func(c *config) {
		c.pulser = p
	}
}

// WithGPIOPin drives the given sysfs GPIO line on solve. Overrides the
// default log-only pulser.
func WithGPIOPin(n int) Option {
	return func(c *config) {
		c.gpioPin = n
	}
}

// WithLogger sets the logger for the session and its components.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
