package client

import (
	"fmt"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/rpg-companion/internal/handlers/advancement/v1alpha1"
)

var (
	tableID     string
	optionIndex int
)

var rollTalentCmd = &cobra.Command{
	Use:   "roll-talent",
	Short: "Roll on the class talent table",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runRoll(v1alpha1.MethodRollTalent)
	},
}

var rollBoonCmd = &cobra.Command{
	Use:   "roll-boon",
	Short: "Roll on the patron boon table",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runRoll(v1alpha1.MethodRollBoon)
	},
}

var resolveChoiceCmd = &cobra.Command{
	Use:   "resolve-choice",
	Short: "Pick an option of the pending choice",
	RunE:  runResolveChoice,
}

func init() {
	for _, cmd := range []*cobra.Command{rollTalentCmd, rollBoonCmd} {
		sessionFlag(cmd)
		cmd.Flags().StringVar(&tableID, "table", "", "Roll on this table instead of the class or patron table")
	}

	sessionFlag(resolveChoiceCmd)
	resolveChoiceCmd.Flags().IntVar(&optionIndex, "option", 0, "Zero based option index")
}

func runRoll(method string) error {
	var resp v1alpha1.RollResponse
	err := invoke(method, &v1alpha1.RollRequest{SessionID: sessionID, TableID: tableID}, &resp)
	if err != nil {
		return fmt.Errorf("failed to roll: %w", err)
	}

	fmt.Printf("🎲 Rolled %d (%d attempt(s), flags: %s)\n", resp.Total, resp.Attempts, resp.Flags)
	if resp.Warning != "" {
		fmt.Printf("⚠️  %s\n", resp.Warning)
	}

	switch {
	case resp.NeedsChoice:
		fmt.Printf("\n%s (choose %d):\n", resp.Choice.Title, resp.Choice.ChooseCount)
		for i, opt := range resp.Choice.Options {
			fmt.Printf("  [%d] %s\n", i, opt.Label)
		}
	case resp.Accepted && resp.Item != nil:
		fmt.Printf("Gained: %s (%s)\n", resp.Item.Name, resp.Item.Type)
	default:
		fmt.Println("Nothing was added, roll again")
	}
	return nil
}

func runResolveChoice(_ *cobra.Command, _ []string) error {
	var resp v1alpha1.ResolveChoiceResponse
	err := invoke(v1alpha1.MethodResolveChoice, &v1alpha1.ResolveChoiceRequest{
		SessionID:   sessionID,
		OptionIndex: optionIndex,
	}, &resp)
	if err != nil {
		return fmt.Errorf("failed to resolve choice: %w", err)
	}

	fmt.Printf("Gained: %s (%s)\n", resp.Item.Name, resp.Item.Type)
	if resp.Remaining > 0 {
		fmt.Printf("%d pick(s) remaining\n", resp.Remaining)
	}
	return nil
}
