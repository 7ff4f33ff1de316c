package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ikbal01/tanks-game/internal/battle/level"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List the built-in stages",
	Args:  cobra.NoArgs,
	RunE:  runMaps,
}

func runMaps(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-5s  %-20s  %-7s  %s\n", "Stage", "Name", "Enemies", "Bonus")
	fmt.Fprintf(out, "  %-5s  %-20s  %-7s  %s\n", "-----", "----", "-------", "-----")

	for n := 1; n <= level.StageCount(); n++ {
		lvl, err := level.Stage(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-5d  %-20s  %-7d  %d\n", n, lvl.Name, len(lvl.Enemies), len(lvl.Bonus))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'tanks play --stage <n>' to start from a stage.")
	return nil
}
