package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/timmy/movierec/internal/app"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/service"
	"github.com/timmy/movierec/internal/source/csvfile"
	"github.com/timmy/movierec/internal/storage"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd(opts *globalOptions) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Import a catalog CSV into the movies table",
		Long: `Import a catalog CSV into the configured database, replacing the
existing rows. Row order is kept so movie ids stay stable.

Set catalog.source to "database" to serve recommendations from the table.

Examples:
  movierec ingest --csv data/tmdb_5000_movies.csv
  DB_DRIVER=postgres movierec ingest --csv movies.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			a := &app.App{Config: cfg}
			defer a.Close()

			repo, err := a.MovieRepository()
			if err != nil {
				return err
			}
			stats, err := service.NewIngestService(repo, nil, logger.GetDefault()).
				ImportCatalog(cmd.Context(), csvfile.NewAdapter(csvPath))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movies (%d duplicate titles) in %dms\n",
				stats.Movies, stats.Duplicates, stats.DurationMs)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the catalog CSV")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

// NewPublishCmd creates the publish command.
func NewPublishCmd(opts *globalOptions) *cobra.Command {
	var (
		csvPath string
		key     string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a catalog CSV to object storage",
		Long: `Validate a catalog CSV and upload it to the configured S3-compatible
bucket (AWS S3, Cloudflare R2, MinIO).

Set catalog.source to "s3" to serve recommendations from the object.

Examples:
  movierec publish --csv data/tmdb_5000_movies.csv
  movierec publish --csv movies.csv --key catalog/2024-06.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if key == "" {
				key = cfg.Catalog.Key
			}
			store, err := storage.NewStorage(&cfg.Storage)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			if s3store, ok := store.(*storage.S3Storage); ok {
				if err := s3store.EnsureBucket(cmd.Context()); err != nil {
					return fmt.Errorf("ensuring bucket: %w", err)
				}
			}
			stats, err := service.NewIngestService(nil, store, logger.GetDefault()).
				PublishFile(cmd.Context(), csvPath, key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %d movies (%d bytes) to %s\n", stats.Movies, stats.Bytes, key)
			if url := store.GetURL(key); url != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "URL: %s\n", url)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the catalog CSV")
	cmd.Flags().StringVar(&key, "key", "", "Object key (defaults to catalog.key)")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}
