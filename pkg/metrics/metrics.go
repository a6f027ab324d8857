package metrics

import (
	"context"
	"errors"

	// Packages
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	metric "go.opentelemetry.io/otel/metric"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Listener records transfer and session events as counters
type Listener struct {
	started   metric.Int64Counter
	completed metric.Int64Counter
	errors    metric.Int64Counter
	bytes     metric.Int64Counter
	sessions  metric.Int64Counter
}

var _ wagon.TransferListener = (*Listener)(nil)
var _ wagon.SessionListener = (*Listener)(nil)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	MetricTransferStarted   = "wagon.transfer.started"
	MetricTransferCompleted = "wagon.transfer.completed"
	MetricTransferErrors    = "wagon.transfer.errors"
	MetricTransferBytes     = "wagon.transfer.bytes"
	MetricSessionEvents     = "wagon.session.events"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewListener creates the counters on a meter
func NewListener(meter metric.Meter) (*Listener, error) {
	if meter == nil {
		return nil, errors.New("meter is nil")
	}

	l := new(Listener)
	var result, err error
	l.started, err = meter.Int64Counter(MetricTransferStarted, metric.WithDescription("Transfers started"))
	result = errors.Join(result, err)
	l.completed, err = meter.Int64Counter(MetricTransferCompleted, metric.WithDescription("Transfers completed"))
	result = errors.Join(result, err)
	l.errors, err = meter.Int64Counter(MetricTransferErrors, metric.WithDescription("Transfers failed"))
	result = errors.Join(result, err)
	l.bytes, err = meter.Int64Counter(MetricTransferBytes, metric.WithDescription("Bytes transferred"), metric.WithUnit("By"))
	result = errors.Join(result, err)
	l.sessions, err = meter.Int64Counter(MetricSessionEvents, metric.WithDescription("Session events"))
	result = errors.Join(result, err)
	if result != nil {
		return nil, result
	}

	// Return success
	return l, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// TransferEvent counts transfers by request type, and bytes from progress
// events
func (l *Listener) TransferEvent(e schema.TransferEvent) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("request", e.Request.String()))
	switch e.Type {
	case schema.TransferStarted:
		l.started.Add(ctx, 1, attrs)
	case schema.TransferCompleted:
		l.completed.Add(ctx, 1, attrs)
	case schema.TransferError:
		l.errors.Add(ctx, 1, attrs, metric.WithAttributes(attribute.String("kind", kindName(e.Err))))
	case schema.TransferProgress:
		l.bytes.Add(ctx, int64(e.Length()), attrs)
	}
}

// SessionEvent counts session events by type
func (l *Listener) SessionEvent(e schema.SessionEvent) {
	l.sessions.Add(context.Background(), 1, metric.WithAttributes(attribute.String("type", e.Type.String())))
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func kindName(err error) string {
	if kind := wagon.KindOf(err); kind != nil {
		return kind.Error()
	}
	return "unknown"
}
