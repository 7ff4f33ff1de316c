package main

import (
	"github.com/spf13/cobra"

	"github.com/Ikbal01/tanks-game/internal/platform/tui"
	"github.com/Ikbal01/tanks-game/internal/storage"
)

// runMenu starts the interactive menu, the default when no command is given.
func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := configureBattles(logger, 1, ""); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	return tui.RunMenu(store, runtimeConfig(), logger)
}
