package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openclaw/agent-teams/internal/config"
	"github.com/openclaw/agent-teams/internal/coordinator"
	"github.com/openclaw/agent-teams/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "agent-teams",
	Short: "File-backed coordination for teams of coding agents",
	Long: `Agent-teams lets multiple agent processes on one machine coordinate
through shared files: named teams, per-member inboxes with cursor-based
polling, broadcasts, and a claimable task board. There is no server;
every command reads and writes the shared data directory directly.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var jsonOutput bool

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.ConfigFile()))
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of formatted output")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/agent-teams")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("AGENT_TEAMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newCoordinator loads config, validates it, and wires the coordinator
// with its logger. The returned cleanup closes the log file.
func newCoordinator() (*coordinator.Coordinator, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	dataDir := cfg.Paths.ResolveDataDir()
	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(dataDir, cfg.Logging.Level)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	coord, err := coordinator.New(dataDir, logger)
	if err != nil {
		logger.Close()
		return nil, nil, nil, err
	}
	cleanup := func() { logger.Close() }
	return coord, cfg, cleanup, nil
}
