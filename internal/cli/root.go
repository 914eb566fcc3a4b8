package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"polyglotpkg/internal/app"
	"polyglotpkg/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "POLYGLOTPKG"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	Verbose    bool
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		printDiagnostics(err)
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	opts := packageOptions{}
	cmd := &cobra.Command{
		Use:   "polyglotpkg",
		Short: "Package Node, Python and PowerShell actions into deployable bundles",
		Long: "Compiles the action project in the working directory, installs its " +
			"dependencies, writes the bundle archive and, for vRO actions, the " +
			"platform package tree.",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			level := viper.GetString("log_level")
			if resolveBool(cmd, cfg.Verbose, "verbose", "verbose") {
				level = "debug"
			}
			setupLogging(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackage(cmd.Context(), cmd, opts)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(c.UsageString())
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(err.Error())
	})

	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "x", false, "Verbose logging (same as --log-level debug)")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	bindPackageFlags(cmd, &opts)

	cmd.AddCommand(newConvertCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("polyglotpkg")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/polyglotpkg")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newAppService() app.Service {
	return app.NewService(log.Logger)
}

// exitCodeForError maps packaging failures by kind first, then falls back
// to the status code of the error.
func exitCodeForError(err error) int {
	switch types.KindOf(err) {
	case types.ErrManifestParse, types.ErrUnsupportedAction, types.ErrUnsupportedRuntime:
		return 2
	case types.ErrManifestNotFound, types.ErrMissingCompilerConfig:
		return 3
	case types.ErrCompilation:
		return 4
	case types.ErrDependencyInstall:
		return 5
	case types.ErrBundleWrite, types.ErrTreeSynthesis:
		return 6
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeNotFound:
		return 3
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// printDiagnostics writes the compiler diagnostics and the failing command
// of a pipeline error, if any, to stderr.
func printDiagnostics(err error) {
	var perr *types.PipelineError
	if !errors.As(err, &perr) {
		return
	}
	for _, diagnostic := range perr.Diagnostics {
		fmt.Fprintln(os.Stderr, diagnostic.String())
	}
	if perr.Command != "" {
		log.Error().Str("command", perr.Command).Int("exit_code", perr.ExitCode).Msg(errorMessage(err))
	}
}
