package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
)

var (
	rollMinimize bool
	rollMaximize bool
)

var rollCmd = &cobra.Command{
	Use:   "roll [formula]",
	Short: "Evaluate a dice formula locally",
	Long: `Evaluate a dice formula without a server. Examples:

  roll 2d6
  roll "4d6kh3"
  roll "2d6 * 5" --max`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().BoolVar(&rollMinimize, "min", false, "force every die to 1")
	rollCmd.Flags().BoolVar(&rollMaximize, "max", false, "force every die to its highest face")
}

func runRoll(cmd *cobra.Command, args []string) error {
	if rollMinimize && rollMaximize {
		return fmt.Errorf("--min and --max cannot be combined")
	}

	formula := strings.Join(args, " ")
	if _, err := dice.Parse(formula); err != nil {
		return err
	}

	result := dice.Evaluate(formula, &dice.Options{Minimize: rollMinimize, Maximize: rollMaximize})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s = %d\n", result.Formula, result.Total)
	for _, term := range result.Terms {
		fmt.Fprintf(out, "  %s\n", term)
	}
	return nil
}
