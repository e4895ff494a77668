package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/memimg/internal/cli"
	"github.com/aretw0/memimg/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memimg",
	Short: "memimg is a memory-image engine demo (bank ledger)",
	Long: `memimg keeps its whole state in memory and persists nothing but an
append-only log of commands. Restarting replays the log and reproduces
the exact same state.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// setup loads the config and builds the logger shared by all commands.
func setup(cmd *cobra.Command) (cli.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return cli.Config{}, nil, err
	}

	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return cfg, logging.New(level), nil
}
