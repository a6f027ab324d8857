package main

import (
	"time"

	// Packages
	humanize "github.com/dustin/go-humanize"
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
	zerolog "github.com/rs/zerolog"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// logListener logs session events and a line for each finished transfer
type logListener struct {
	logger    zerolog.Logger
	started   map[string]time.Time
	bytes     map[string]uint64
	lastShown map[string]time.Time
}

var _ wagon.SessionListener = (*logListener)(nil)
var _ wagon.TransferListener = (*logListener)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	progressInterval = time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewLogListener(logger zerolog.Logger) *logListener {
	return &logListener{
		logger:    logger,
		started:   make(map[string]time.Time),
		bytes:     make(map[string]uint64),
		lastShown: make(map[string]time.Time),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (l *logListener) SessionEvent(e schema.SessionEvent) {
	switch e.Type {
	case schema.SessionConnectionRefused, schema.SessionError:
		l.logger.Error().Err(e.Err).Str("session", e.Source).Msg(e.Type.String())
	default:
		l.logger.Debug().Str("session", e.Source).Msg(e.Type.String())
	}
}

func (l *logListener) TransferEvent(e schema.TransferEvent) {
	name := e.Resource.Name
	switch e.Type {
	case schema.TransferStarted:
		l.started[name] = time.Now()
		l.bytes[name] = 0
		l.lastShown[name] = time.Now()
	case schema.TransferProgress:
		l.bytes[name] += uint64(e.Length())
		if time.Since(l.lastShown[name]) > progressInterval {
			l.logger.Info().Str("resource", name).Stringer("request", e.Request).Msgf("%s transferred", humanize.Bytes(l.bytes[name]))
			l.lastShown[name] = time.Now()
		}
	case schema.TransferCompleted:
		l.logger.Info().
			Str("resource", name).
			Stringer("request", e.Request).
			Dur("elapsed", time.Since(l.started[name])).
			Msgf("%s %s", humanize.Bytes(l.bytes[name]), verb(e.Request))
		l.forget(name)
	case schema.TransferError:
		l.logger.Error().Err(e.Err).Str("resource", name).Stringer("request", e.Request).Msg("transfer failed")
		l.forget(name)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (l *logListener) forget(name string) {
	delete(l.started, name)
	delete(l.bytes, name)
	delete(l.lastShown, name)
}

func verb(request schema.RequestType) string {
	if request == schema.RequestPut {
		return "uploaded"
	}
	return "downloaded"
}
