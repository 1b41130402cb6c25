// Package main is the entry point for the advancement gRPC server
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-companion/cmd/server/client"
)

const serviceName = "rpg-companion"

var rootCmd = &cobra.Command{
	Use:   "rpg-companion",
	Short: "RPG Companion gRPC Server",
	Long:  `RPG Companion levels Shadowdark characters: talent and boon rolls, hit points, selections and the final write to the actor store.`,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(importPackCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
