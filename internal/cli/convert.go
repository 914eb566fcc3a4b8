package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"polyglotpkg/internal/app"
)

type convertOptions struct {
	From   string
	To     string
	Source string
	Dest   string
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a vRO package tree to a flat package or back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.From, "in", "tree", "Source format (tree|flat)")
	cmd.Flags().StringVar(&opts.To, "out", "flat", "Target format (flat|tree)")
	cmd.Flags().StringVar(&opts.Source, "src", "", "Source tree directory or package file")
	cmd.Flags().StringVar(&opts.Dest, "dest", "", "Destination package file or tree directory")
	_ = cmd.MarkFlagRequired("src")
	_ = cmd.MarkFlagRequired("dest")
	return cmd
}

func runConvert(ctx context.Context, opts convertOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service := newAppService()
	err := service.Convert(ctx, app.ConvertRequest{
		From:   app.ProjectFormat(opts.From),
		To:     app.ProjectFormat(opts.To),
		Source: opts.Source,
		Dest:   opts.Dest,
	})
	if err != nil {
		return err
	}
	fmt.Printf("converted %s (%s) to %s (%s)\n", opts.Source, opts.From, opts.Dest, opts.To)
	return nil
}
