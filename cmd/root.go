package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/config"
	"github.com/zjrosen/wdl/internal/log"
	"github.com/zjrosen/wdl/internal/render"
	"github.com/zjrosen/wdl/internal/styles"
	"github.com/zjrosen/wdl/internal/tracing"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot race with the preview's input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const stdinName = "<stdin>"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	noColor   bool
	cfg       config.Config

	tracer     *tracing.Provider
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "wdl",
	Short: "Check, format and preview Window Description Language layouts",
	Long: `wdl parses Window Description Language programs: a titled window built
from nested panels, flow and grid layouts, buttons, labels, text fields
and radio groups.

Every command that takes FILE reads standard input when FILE is "-".`,
	Version:            version,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/wdl/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs to $WDL_LOG (default: debug.log)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("catalog.path", defaults.Catalog.Path)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("preview.debounce", defaults.Preview.Debounce)
	viper.SetDefault("preview.width", defaults.Preview.Width)
	viper.SetDefault("render.color", defaults.Render.Color)
	viper.SetDefault("markdown_style", defaults.MarkdownStyle)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	userPath := filepath.Join(config.Dir(), "config.yaml")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .wdl/config.yaml (current directory)
		// 2. ~/.config/wdl/config.yaml (user config)
		if _, err := os.Stat(".wdl/config.yaml"); err == nil {
			viper.SetConfigFile(".wdl/config.yaml")
		} else {
			viper.AddConfigPath(config.Dir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere: create the user config.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(userPath); writeErr == nil {
				viper.SetConfigFile(userPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func setup(cmd *cobra.Command, _ []string) error {
	// Initialize logging if debug mode enabled (via flag or env var)
	if os.Getenv("WDL_DEBUG") != "" || debugFlag {
		logPath := os.Getenv("WDL_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "wdl")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
		log.Info(log.CatConfig, "wdl starting", "command", cmd.CommandPath(), "config", viper.ConfigFileUsed())
	}

	if noColor || !cfg.Render.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p, err := tracing.NewProvider(cfg.Tracing.Provider())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	tracer = p
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	return shutdown(cmd.Context())
}

// shutdown flushes tracing and closes the debug log. Cobra skips
// PersistentPostRunE when RunE fails, so Execute calls it as well.
func shutdown(ctx context.Context) error {
	var err error
	if tracer != nil {
		err = tracer.Shutdown(ctx)
		tracer = nil
	}
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
		log.Reset()
	}
	return err
}

// newCompiler returns a compiler configured from cfg.
func newCompiler(opts compiler.Options) *compiler.Compiler {
	opts.CacheEnabled = cfg.Cache.Enabled
	opts.CacheTTL = cfg.Cache.TTL
	if tracer != nil {
		opts.Tracer = tracer.Tracer()
	}
	return compiler.New(opts)
}

// reportedError is an error whose details were already written to stderr.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// readSource reads FILE, or standard input when arg is "-".
func readSource(cmd *cobra.Command, arg string) (name, src string, err error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading standard input: %w", err)
		}
		return stdinName, string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", arg, err)
	}
	return arg, string(data), nil
}

// compileArg reads and compiles arg. A parse failure is printed as a
// colored snippet before the error is returned.
func compileArg(cmd *cobra.Command, c *compiler.Compiler, arg string) (compiler.Result, error) {
	name, src, err := readSource(cmd, arg)
	if err != nil {
		return compiler.Result{}, err
	}
	res, err := c.Compile(cmd.Context(), name, src)
	if err != nil {
		if d, ok := res.Diagnostic(); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n%s\n\n", styles.MutedStyle.Render(name), render.Diagnostic(d, src))
			return res, &reportedError{fmt.Errorf("%s: %w", name, err)}
		}
		return res, err
	}
	return res, nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_ = shutdown(context.Background())
	}
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), styles.ErrorHeaderStyle.Render("Error: "+strings.TrimSpace(err.Error())))
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
