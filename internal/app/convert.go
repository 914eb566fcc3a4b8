package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Convert turns a platform tree into a flat package or the reverse.
func (s Service) Convert(ctx context.Context, req ConvertRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	source := strings.TrimSpace(req.Source)
	dest := strings.TrimSpace(req.Dest)
	if source == "" || dest == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source and destination paths are required")
	}
	switch {
	case req.From == ProjectFormatTree && req.To == ProjectFormatFlat:
		s.Logger.Info().Str("src", source).Str("dest", dest).Msg("converting tree to flat package")
		return s.TreeConverter.Flatten(source, dest)
	case req.From == ProjectFormatFlat && req.To == ProjectFormatTree:
		s.Logger.Info().Str("src", source).Str("dest", dest).Msg("converting flat package to tree")
		return s.TreeConverter.Expand(source, dest)
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported conversion %s -> %s", req.From, req.To))
	}
}
