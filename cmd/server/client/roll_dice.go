package client

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/rpg-companion/internal/handlers/advancement/v1alpha1"
)

var (
	diceMinimize bool
	diceMaximize bool
	diceStrict   bool
)

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [formula]",
	Short: "Evaluate a dice formula on the server",
	Long: `Evaluate a dice formula and see individual results. Examples:

  roll-dice 1d20
  roll-dice 4d6kh3
  roll-dice "2d6 * 5" --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: rollDice,
}

func init() {
	rollDiceCmd.Flags().BoolVar(&diceMinimize, "min", false, "force every die to 1")
	rollDiceCmd.Flags().BoolVar(&diceMaximize, "max", false, "force every die to its highest face")
	rollDiceCmd.Flags().BoolVar(&diceStrict, "strict", false, "fail on a malformed formula instead of totaling 0")
}

func rollDice(_ *cobra.Command, args []string) error {
	req := &v1alpha1.EvaluateDiceRequest{
		Formula:  strings.Join(args, " "),
		Minimize: diceMinimize,
		Maximize: diceMaximize,
		Strict:   diceStrict,
	}

	var resp v1alpha1.EvaluateDiceResponse
	if err := invoke(v1alpha1.MethodEvaluateDice, req, &resp); err != nil {
		return fmt.Errorf("failed to evaluate dice: %w", err)
	}

	fmt.Printf("🎲 %s = %d\n", resp.Result.Formula, resp.Result.Total)
	for _, term := range resp.Result.Terms {
		fmt.Printf("  %s\n", term)
	}
	return nil
}
