package transport

import (
	"errors"
	"time"

	// Packages
	zerolog "github.com/rs/zerolog"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for transport configuration.
type Opt func(*opts) error

type opts struct {
	logger        zerolog.Logger
	tracer        trace.Tracer
	interactive   bool
	timeout       time.Duration
	readTimeout   time.Duration
	directoryCopy bool
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultTimeout     = time.Minute
	DefaultReadTimeout = 30 * time.Minute
)

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger zerolog.Logger) Opt {
	return func(o *opts) error {
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used for tracing operations.
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

// WithInteractive marks the transport as driven by an interactive user
func WithInteractive(interactive bool) Opt {
	return func(o *opts) error {
		o.interactive = interactive
		return nil
	}
}

// WithTimeout sets the connect timeout passed to the backend
func WithTimeout(timeout time.Duration) Opt {
	return func(o *opts) error {
		if timeout < 0 {
			return errors.New("timeout cannot be negative")
		}
		o.timeout = timeout
		return nil
	}
}

// WithReadTimeout sets the read timeout passed to the backend
func WithReadTimeout(timeout time.Duration) Opt {
	return func(o *opts) error {
		if timeout < 0 {
			return errors.New("read timeout cannot be negative")
		}
		o.readTimeout = timeout
		return nil
	}
}

// WithDirectoryCopy sets the directory copy capability flag
func WithDirectoryCopy(supported bool) Opt {
	return func(o *opts) error {
		o.directoryCopy = supported
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyOpts(opt []Opt) (opts, error) {
	// Set defaults
	o := opts{
		logger:        zerolog.Nop(),
		timeout:       DefaultTimeout,
		readTimeout:   DefaultReadTimeout,
		directoryCopy: true,
	}

	// Apply options
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return opts{}, err
		}
	}

	// Return success
	return o, nil
}
