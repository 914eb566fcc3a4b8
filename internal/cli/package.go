package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"polyglotpkg/internal/adapters"
	"polyglotpkg/internal/app"
	"polyglotpkg/internal/types"
)

type packageOptions struct {
	ProjectDir string
	OutDir     string
	Bundle     string
	VroTree    string
	SkipTree   bool
	Env        string
	Report     string
}

func bindPackageFlags(cmd *cobra.Command, opts *packageOptions) {
	cmd.Flags().StringVarP(&opts.ProjectDir, "project-dir", "p", ".", "Action project directory")
	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "o", "", "Compiler output directory (default <project-dir>/out)")
	cmd.Flags().StringVarP(&opts.Bundle, "bundle", "b", "", "Bundle archive path (default <project-dir>/dist/bundle.zip)")
	cmd.Flags().StringVar(&opts.VroTree, "vro-tree", "", "vRO package tree directory (default <project-dir>/dist/vro)")
	cmd.Flags().BoolVar(&opts.SkipTree, "skip-vro-tree", false, "Do not write the vRO package tree")
	cmd.Flags().StringVarP(&opts.Env, "env", "e", "", "Platform override (vro|abx)")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Write a YAML run report to this path")

	_ = viper.BindPFlag("project_dir", cmd.Flags().Lookup("project-dir"))
	_ = viper.BindPFlag("out_dir", cmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("bundle", cmd.Flags().Lookup("bundle"))
	_ = viper.BindPFlag("vro_tree", cmd.Flags().Lookup("vro-tree"))
	_ = viper.BindPFlag("skip_vro_tree", cmd.Flags().Lookup("skip-vro-tree"))
	_ = viper.BindPFlag("env", cmd.Flags().Lookup("env"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
}

func runPackage(ctx context.Context, cmd *cobra.Command, opts packageOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	override, err := parsePlatform(resolveString(cmd, opts.Env, "env", "env"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Package(ctx, app.PackageRequest{
		Workspace:        resolveString(cmd, opts.ProjectDir, "project_dir", "project-dir"),
		BundlePath:       resolveString(cmd, opts.Bundle, "bundle", "bundle"),
		OutDir:           resolveString(cmd, opts.OutDir, "out_dir", "out-dir"),
		TreeDir:          resolveString(cmd, opts.VroTree, "vro_tree", "vro-tree"),
		SkipTree:         resolveBool(cmd, opts.SkipTree, "skip_vro_tree", "skip-vro-tree"),
		PlatformOverride: override,
		Events:           adapters.LogEventSink{Logger: log.Logger},
		ReportPath:       resolveString(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("bundle: %s\n", result.BundlePath)
	if result.TreeDir != "" {
		fmt.Printf("vro tree: %s\n", result.TreeDir)
	}
	return nil
}

// parsePlatform accepts an empty value (no override) or a known platform.
func parsePlatform(value string) (types.ActionType, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	platform := types.ParseActionType(value)
	if platform == types.ActionTypeUnknown {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown platform %q, expected vro or abx", value))
	}
	return platform, nil
}
