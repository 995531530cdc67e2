package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/adkit/api"
	"github.com/s0up4200/adkit/client"
	"github.com/s0up4200/adkit/config"
	"github.com/s0up4200/adkit/logging"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger = zerolog.Nop()
	adkitClient *client.Client

	// Command flags
	debug  bool
	pretty bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adkit",
	Short: "A command line client for the adkit advertising API",
	Long: `adkit manages campaigns and RTB feeds through the adkit REST API.

Payloads are read from JSON or YAML files, responses are printed as JSON.
Set ADKIT_API_KEY or api.key in config.yaml to authenticate.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every API request and response")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "indent JSON output")
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override from command line if specified
	if cmd.Flags().Changed("debug") {
		cfg.API.Debug = debug
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	// request events are emitted at debug level
	if cfg.API.Debug || cfg.API.EnableInterception {
		cfg.Logging.Level = "debug"
	}

	logger = setupLogger(cfg.Logging)

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	adkitClient, err = client.New(cfg.API.Key,
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithTimeout(time.Duration(cfg.API.TimeoutMS)*time.Millisecond),
		api.WithDebug(cfg.API.Debug),
		api.WithInterception(cfg.API.EnableInterception),
		api.WithLogLevel(level),
		api.WithLogger(logging.FromZerolog(logger)),
		api.WithUserAgent(fmt.Sprintf("adkit-cli/%s %s", version, api.UserAgent())),
	)
	if err != nil {
		return fmt.Errorf("failed to create adkit client: %w", err)
	}

	logger.Debug().
		Str("base_url", cfg.API.BaseURL).
		Int("timeout_ms", cfg.API.TimeoutMS).
		Msg("Client initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
