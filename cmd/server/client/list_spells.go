package client

import (
	"fmt"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/rpg-companion/internal/handlers/advancement/v1alpha1"
)

var listSpellsCmd = &cobra.Command{
	Use:   "list-spells [class name]",
	Short: "List the spells a class can learn",
	Args:  cobra.ExactArgs(1),
	RunE:  runListSpells,
}

func runListSpells(_ *cobra.Command, args []string) error {
	var resp v1alpha1.ListSpellsResponse
	if err := invoke(v1alpha1.MethodListSpells, &v1alpha1.ListSpellsRequest{ClassName: args[0]}, &resp); err != nil {
		return fmt.Errorf("failed to list spells: %w", err)
	}

	fmt.Printf("📖 %d spells for %s\n\n", len(resp.Spells), args[0])
	for _, spell := range resp.Spells {
		tier := spell.Int("tier")
		fmt.Printf("  [tier %d] %s (%s)\n", tier, spell.Name, spell.ID)
	}
	return nil
}
