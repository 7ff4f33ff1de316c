package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ikbal01/tanks-game/internal/battle/level"
	"github.com/Ikbal01/tanks-game/internal/multiplayer"
	"github.com/Ikbal01/tanks-game/internal/platform/tui"
	"github.com/Ikbal01/tanks-game/internal/registry"
	"github.com/Ikbal01/tanks-game/internal/storage"
)

var (
	flagPlayers int
	flagStage   int
	flagMap     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a battle",
	Long: `Start a battle directly, skipping the menu.

Controls:
  W A S D / Arrows   - Drive (player 2 uses the arrows in co-op)
  Space / Enter      - Fire (player 2 fires with Enter in co-op)
  P                  - Pause
  R                  - Restart (after game over)
  Esc                - Leave (while paused or after game over)
  Ctrl+S             - Screenshot
  Q / Ctrl+C         - Quit

Examples:
  tanks play
  tanks play --players 2
  tanks play --stage 5 --difficulty hard
  tanks play --map ./my-map.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayers, "players", 1, "Number of players at this keyboard (1 or 2)")
	playCmd.Flags().IntVar(&flagStage, "stage", 1, "First campaign stage")
	playCmd.Flags().StringVar(&flagMap, "map", "", "Play a custom map file instead of the campaign")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameID, mode := "tanks", multiplayer.MatchModeSolo
	switch flagPlayers {
	case 1:
	case 2:
		gameID, mode = "tanks_coop", multiplayer.MatchModeLocalCoop
	default:
		return fmt.Errorf("--players must be 1 or 2, got %d", flagPlayers)
	}

	if flagStage < 1 || flagStage > level.StageCount() {
		return fmt.Errorf("--stage must be between 1 and %d", level.StageCount())
	}
	if flagMap != "" {
		if _, err := level.Load(flagMap); err != nil {
			return err
		}
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := configureBattles(logger, flagStage, flagMap); err != nil {
		return err
	}

	game, err := registry.CreateMulti(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	return tui.Run(game, mode, store, runtimeConfig(), logger)
}
