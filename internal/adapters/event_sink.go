package adapters

import (
	"sync"

	"github.com/rs/zerolog"

	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/types"
)

// ChannelEventSink forwards events to a buffered channel. Publish never
// blocks; an event that does not fit in the buffer is dropped and logged.
type ChannelEventSink struct {
	events chan types.Event
	logger zerolog.Logger
}

func NewChannelEventSink(buffer int, logger zerolog.Logger) *ChannelEventSink {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelEventSink{events: make(chan types.Event, buffer), logger: logger}
}

func (s *ChannelEventSink) Publish(event types.Event) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn().Str("event", string(event)).Msg("event buffer full, dropping event")
	}
}

// Events is the receiving side. It is closed by Close.
func (s *ChannelEventSink) Events() <-chan types.Event {
	return s.events
}

func (s *ChannelEventSink) Close() {
	close(s.events)
}

// LogEventSink writes every event to the logger at debug level.
type LogEventSink struct {
	Logger zerolog.Logger
}

func (s LogEventSink) Publish(event types.Event) {
	s.Logger.Debug().Str("event", string(event)).Msg("lifecycle event")
}

// RecordingEventSink keeps every published event in order.
type RecordingEventSink struct {
	mu     sync.Mutex
	events []types.Event
}

func (s *RecordingEventSink) Publish(event types.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *RecordingEventSink) Events() []types.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Event(nil), s.events...)
}

// MultiEventSink fans an event out to several sinks in order.
type MultiEventSink []ports.EventSink

func (m MultiEventSink) Publish(event types.Event) {
	for _, sink := range m {
		if sink != nil {
			sink.Publish(event)
		}
	}
}

type NopEventSink struct{}

func (NopEventSink) Publish(types.Event) {}

var (
	_ ports.EventSink = (*ChannelEventSink)(nil)
	_ ports.EventSink = LogEventSink{}
	_ ports.EventSink = (*RecordingEventSink)(nil)
	_ ports.EventSink = MultiEventSink{}
	_ ports.EventSink = NopEventSink{}
)
