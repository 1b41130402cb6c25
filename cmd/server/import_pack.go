package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

var importDir string

var importPackCmd = &cobra.Command{
	Use:   "import-pack",
	Short: "Import YAML content packs into redis",
	Long: `Reads every YAML pack under a directory and writes the documents to redis
so servers started with RPG_COMPANION_CONTENT_SOURCE=redis can load them.`,
	RunE: runImportPack,
}

func init() {
	importPackCmd.Flags().StringVar(&importDir, "dir", "", "pack directory (overrides RPG_COMPANION_CONTENT_DIR)")
}

func runImportPack(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.ContentDir
	if importDir != "" {
		dir = importDir
	}

	ctx := cmd.Context()
	docs, err := documents.NewYAMLSource(os.DirFS(dir)).Load(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to read packs in %s", dir)
	}

	client, err := redisclient.NewClientFromURL(cfg.RedisURL)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
	}
	defer func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	writer, err := documents.NewRedisWriter(&documents.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	n, err := writer.Import(ctx, docs)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d documents from %s\n", n, dir)
	return nil
}
