package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emilythestrangee/quora-clone/backend/internal/config"
	"github.com/emilythestrangee/quora-clone/backend/internal/logging"
)

var (
	// Global flags
	envFile     string
	port        int
	databaseURL string
	logLevel    string

	logger *zap.Logger
	cfg    config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qaboard",
	Short: "Question and answer board API",
	Long: `qaboard serves a REST API for posting questions, answering them and
voting on both, backed by PostgreSQL.

Configuration is read from a .env file, then the environment, then flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel, cfg.IsProduction())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP listen port (overrides PORT)")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// loadConfig layers flags that were set explicitly over the env-derived
// configuration.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	c, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("database-url") {
		c.DatabaseURL = databaseURL
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("port") {
		c.Port = port
	}

	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
