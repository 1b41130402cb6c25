// Package client provides test commands for the RPG Companion gRPC service
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
	v1alpha1 "github.com/KirkDiggler/rpg-companion/internal/handlers/advancement/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	// sessionID is shared by every command that acts on an open session
	sessionID string
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the RPG Companion",
	Long:  `Client commands allow you to test the advancement service by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(rollDiceCmd)
	ClientCmd.AddCommand(listSpellsCmd)
	ClientCmd.AddCommand(calculateCmd)

	// Session commands
	ClientCmd.AddCommand(beginCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(rollTalentCmd)
	ClientCmd.AddCommand(rollBoonCmd)
	ClientCmd.AddCommand(resolveChoiceCmd)
	ClientCmd.AddCommand(rollHPCmd)
	ClientCmd.AddCommand(rollGoldCmd)
	ClientCmd.AddCommand(selectCmd)
	ClientCmd.AddCommand(validateCmd)
	ClientCmd.AddCommand(finalizeCmd)
}

// sessionFlag registers the required --session flag on a command
func sessionFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sessionID, "session", "", "Advancement session ID (required)")
	_ = cmd.MarkFlagRequired("session") // nolint:errcheck // safe to ignore in init
}

// invoke calls one advancement method and decodes the response into out
func invoke(method string, req, out any) error {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	in, err := v1alpha1.Encode(req)
	if err != nil {
		return err
	}
	resp := &structpb.Struct{}
	if err := conn.Invoke(ctx, v1alpha1.FullMethod(method), in, resp); err != nil {
		return errors.FromGRPCError(err)
	}
	return v1alpha1.Decode(resp, out)
}

// printJSON writes v indented to stdout
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
