package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	v1alpha1 "github.com/KirkDiggler/rpg-companion/internal/handlers/advancement/v1alpha1"
)

var (
	actorID     string
	draftFile   string
	targetLevel int
	classID     string
	ancestryID  string
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Show what a class gains at a level",
	RunE: func(_ *cobra.Command, _ []string) error {
		var resp v1alpha1.CalculateAdvancementResponse
		err := invoke(v1alpha1.MethodCalculateAdvancement, &v1alpha1.CalculateAdvancementRequest{
			ClassID:     classID,
			AncestryID:  ancestryID,
			TargetLevel: targetLevel,
		}, &resp)
		if err != nil {
			return fmt.Errorf("failed to calculate advancement: %w", err)
		}
		return printJSON(resp.Requirements)
	},
}

var beginCmd = &cobra.Command{
	Use:   "begin",
	Short: "Open an advancement session",
	Long: `Open a leveling session for an existing character (--actor) or a new
level 0 character described by a JSON file (--draft).`,
	RunE: runBegin,
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show an advancement session",
	RunE:  sessionCall(v1alpha1.MethodGetAdvancement, &v1alpha1.StateResponse{}),
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether a session can be finalized",
	RunE:  sessionCall(v1alpha1.MethodValidateAdvancement, &v1alpha1.StateResponse{}),
}

var rollHPCmd = &cobra.Command{
	Use:   "roll-hp",
	Short: "Roll hit points for the level",
	RunE:  sessionCall(v1alpha1.MethodRollHitPoints, &v1alpha1.RollHitPointsResponse{}),
}

var rollGoldCmd = &cobra.Command{
	Use:   "roll-gold",
	Short: "Roll starting gold for a new character",
	RunE:  sessionCall(v1alpha1.MethodRollGold, &v1alpha1.RollGoldResponse{}),
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Apply the session to the character",
	RunE:  sessionCall(v1alpha1.MethodFinalizeAdvancement, &v1alpha1.FinalizeResponse{}),
}

func init() {
	calculateCmd.Flags().StringVar(&classID, "class", "", "Class document ID (required)")
	calculateCmd.Flags().StringVar(&ancestryID, "ancestry", "", "Ancestry document ID")
	calculateCmd.Flags().IntVar(&targetLevel, "level", 1, "Target level")
	_ = calculateCmd.MarkFlagRequired("class") // nolint:errcheck // safe to ignore in init

	beginCmd.Flags().StringVar(&actorID, "actor", "", "Existing actor ID")
	beginCmd.Flags().StringVar(&draftFile, "draft", "", "Path to a JSON file describing a new character")
	beginCmd.Flags().IntVar(&targetLevel, "level", 0, "Target level (defaults to the next level)")
	beginCmd.MarkFlagsMutuallyExclusive("actor", "draft")
	beginCmd.MarkFlagsOneRequired("actor", "draft")

	for _, cmd := range []*cobra.Command{getCmd, validateCmd, rollHPCmd, rollGoldCmd, finalizeCmd} {
		sessionFlag(cmd)
	}
}

func runBegin(_ *cobra.Command, _ []string) error {
	req := &v1alpha1.BeginAdvancementRequest{
		ActorID:     actorID,
		TargetLevel: targetLevel,
	}
	if draftFile != "" {
		data, err := os.ReadFile(draftFile)
		if err != nil {
			return fmt.Errorf("failed to read draft: %w", err)
		}
		var draft shadowdark.Actor
		if err := json.Unmarshal(data, &draft); err != nil {
			return fmt.Errorf("failed to parse draft: %w", err)
		}
		req.Draft = &draft
	}

	var resp v1alpha1.StateResponse
	if err := invoke(v1alpha1.MethodBeginAdvancement, req, &resp); err != nil {
		return fmt.Errorf("failed to begin advancement: %w", err)
	}

	fmt.Printf("✨ Session %s: level %d -> %d\n", resp.State.ID, resp.State.CurrentLevel, resp.State.TargetLevel)
	return printJSON(resp.State.Requirements)
}

// sessionCall builds a command body for methods that take only a session id
func sessionCall(method string, out any) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		if err := invoke(method, &v1alpha1.SessionRequest{SessionID: sessionID}, out); err != nil {
			return fmt.Errorf("%s failed: %w", method, err)
		}
		return printJSON(out)
	}
}
