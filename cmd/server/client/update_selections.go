package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/rpg-companion/internal/handlers/advancement/v1alpha1"
)

var (
	selectionsFile string
	spellIDs       []string
	languageIDs    []string
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Update stat, mastery, spell and language selections",
	Long: `Merge selections into a session. Spells and languages can be given as flags;
stat and mastery picks keyed by rolled item id come from a JSON file shaped like
the UpdateSelections request.`,
	RunE: runSelect,
}

func init() {
	sessionFlag(selectCmd)
	selectCmd.Flags().StringVar(&selectionsFile, "file", "", "JSON file with selections")
	selectCmd.Flags().StringSliceVar(&spellIDs, "spell", nil, "Spell document ID (repeatable)")
	selectCmd.Flags().StringSliceVar(&languageIDs, "language", nil, "Language document ID (repeatable)")
}

func runSelect(_ *cobra.Command, _ []string) error {
	req := &v1alpha1.UpdateSelectionsRequest{}
	if selectionsFile != "" {
		data, err := os.ReadFile(selectionsFile)
		if err != nil {
			return fmt.Errorf("failed to read selections: %w", err)
		}
		if err := json.Unmarshal(data, req); err != nil {
			return fmt.Errorf("failed to parse selections: %w", err)
		}
	}
	req.SessionID = sessionID
	if len(spellIDs) > 0 {
		req.Spells = spellIDs
	}
	if len(languageIDs) > 0 {
		req.Languages = languageIDs
	}

	var resp v1alpha1.StateResponse
	if err := invoke(v1alpha1.MethodUpdateSelections, req, &resp); err != nil {
		return fmt.Errorf("failed to update selections: %w", err)
	}

	if resp.Validation != nil && !resp.Validation.Valid {
		fmt.Printf("Not ready: %s\n", resp.Validation.Reason)
		return nil
	}
	fmt.Println("✅ Ready to finalize")
	return nil
}
