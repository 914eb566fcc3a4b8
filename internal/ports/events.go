package ports

import "polyglotpkg/internal/types"

// EventSink receives lifecycle events. Publish must not block the pipeline.
type EventSink interface {
	Publish(event types.Event)
}
