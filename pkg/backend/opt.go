package backend

import (
	"context"
	"errors"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// StoreFactory returns the object store for a connect request
type StoreFactory func(context.Context, schema.ConnectRequest) (wagon.Store, error)

type opt struct {
	store          wagon.Store
	factory        StoreFactory
	tracerProvider trace.TracerProvider
}

// Opt represents a function that modifies the options
type Opt func(*opt) error

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(opts ...Opt) (*opt, error) {
	var o opt

	// Apply the options
	for _, fn := range opts {
		if err := fn(&o); err != nil {
			return nil, err
		}
	}

	// Return success
	return &o, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithStore uses an existing store for every connection. The store is
// owned by the caller and is not closed on disconnect.
func WithStore(store wagon.Store) Opt {
	return func(o *opt) error {
		if store == nil {
			return errors.New("store is nil")
		}
		o.store = store
		return nil
	}
}

// WithStoreFactory replaces the scheme-based store construction
func WithStoreFactory(factory StoreFactory) Opt {
	return func(o *opt) error {
		if factory == nil {
			return errors.New("store factory is nil")
		}
		o.factory = factory
		return nil
	}
}

// WithTracerProvider adds a span for each S3 API call
func WithTracerProvider(provider trace.TracerProvider) Opt {
	return func(o *opt) error {
		o.tracerProvider = provider
		return nil
	}
}
