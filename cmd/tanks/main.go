// tanks is a terminal tank battle: defend the fortress against waves of enemy
// tanks, alone or with a partner.
//
// Usage:
//
//	tanks                    - Start the menu
//	tanks play               - Start a battle directly
//	tanks sim                - Run headless battles and print their hashes
//	tanks scores             - Show high scores and recent battles
//	tanks maps               - List the built-in stages
//	tanks serve              - Start the SSH server for remote and co-op play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible battles
//	--db <path>         - Set database path (default: ~/.tanks/tanks.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Ikbal01/tanks-game/internal/battle"
	"github.com/Ikbal01/tanks-game/internal/config"
	"github.com/Ikbal01/tanks-game/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
	flagConfig     string
	flagDifficulty string
	flagStrict     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Tanks - defend your fortress in the terminal",
	Long: `Tanks is a terminal tank battle. Drive your tank around a brick maze,
shoot down the enemy waves and keep them away from your fortress.

Available commands:
  play     - Start a battle directly
  sim      - Run headless battles (determinism checks)
  scores   - View high scores and recent battles
  maps     - List the built-in stages
  serve    - Start SSH server for remote and online co-op play

Examples:
  tanks
  tanks play --players 2
  tanks play --stage 3 --difficulty hard
  tanks sim --seeds 1,2,3 --ticks 7200
  tanks serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.tanks/tanks.db", "Path to scores database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.tanks/tanks.log", "Log file used while a battle owns the terminal")
	pf.StringVar(&flagConfig, "config", "", "Path to custom battle config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVar(&flagStrict, "strict", false, "Panic when a world invariant breaks")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates the logger every command shares.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// fileLogger logs to --log-file so the full screen terminal stays clean.
// The returned close function must be called when the program ends.
func fileLogger() (*log.Logger, func(), error) {
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	logger, err := newLogger(f, "tanks")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// configureBattles hands the shared flags to every game the registry creates.
func configureBattles(logger *log.Logger, stage int, mapPath string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	battle.Configure(battle.Options{
		ConfigPath: flagConfig,
		Difficulty: preset,
		MapPath:    mapPath,
		Stage:      stage,
		Strict:     flagStrict,
		Logger:     logger,
	})
	return nil
}

// runtimeConfig builds the runtime config from the flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
