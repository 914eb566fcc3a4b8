package app

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"

	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/types"
)

// pipelineRun is the state of one packaging run shared by the strategies.
type pipelineRun struct {
	workspace  string
	bundlePath string
	outDir     string
	depsDir    string
	manifest   *types.Manifest
	actionType types.ActionType
	runtime    types.ActionRuntime

	sink   ports.EventSink
	events []types.Event
	logger zerolog.Logger
}

func (r *pipelineRun) publish(event types.Event) {
	r.events = append(r.events, event)
	if r.sink != nil {
		r.sink.Publish(event)
	}
}

// phase runs fn between the start and end events of p. On failure the
// error event replaces the end event and the error is returned with kind
// as its default classification.
func (r *pipelineRun) phase(p types.Phase, kind types.ErrorKind, fn func() error) error {
	r.publish(p.Start)
	r.logger.Debug().Str("phase", p.Name).Msg("phase started")
	if err := fn(); err != nil {
		r.publish(p.Error)
		r.logger.Debug().Str("phase", p.Name).Err(err).Msg("phase failed")
		return withKind(kind, p.Name+" failed", err)
	}
	r.publish(p.End)
	r.logger.Debug().Str("phase", p.Name).Msg("phase finished")
	return nil
}

// withKind classifies an error that does not carry a kind yet. Errors
// that already have one are returned unchanged.
func withKind(kind types.ErrorKind, msg string, err error) error {
	if err == nil || types.KindOf(err) != "" {
		return err
	}
	return types.NewPipelineError(kind, errbuilder.CodeOf(err), msg, err)
}
