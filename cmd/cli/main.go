package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/route66/trip-service/config"
	"github.com/route66/trip-service/internal/app"
)

var (
	cfgFile string
	cfg     *config.Config
	cfgErr  error
	logger  *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trip-cli",
	Short: "Route 66 trip planner CLI",
	Long: `A CLI for planning Route 66 road trips with balanced daily drive times.
Plans, feasibility checks and day-count comparisons run locally against the
configured stop directory. Plans can be exported as iCalendar, Excel or JSON.`,
	PersistentPreRunE: persistentPreRun,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and runs it until
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

func initConfig() {
	cfg, cfgErr = config.Load(cfgFile)
}

// persistentPreRun runs before each command and initializes dependencies
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}
	if cfgErr != nil {
		return fmt.Errorf("failed to load config: %w", cfgErr)
	}
	logger = initLogger()
	log.Logger = *logger
	return nil
}

func initLogger() *zerolog.Logger {
	// Always console output for the CLI; stdout is reserved for results.
	logCfg := cfg.Logging
	logCfg.Format = "console"
	l := app.NewLogger(logCfg, "trip-cli")
	return &l
}

// openApp wires the planner and stop directory from the loaded config.
func openApp(ctx context.Context) (*app.App, error) {
	return app.New(ctx, cfg)
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
