// Package commands implements the movierec CLI.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/timmy/movierec/internal/app"
	"github.com/timmy/movierec/internal/config"
	"github.com/timmy/movierec/internal/logger"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "movierec",
		Short: "Content-based movie recommendations from plot overviews",
		Long: `movierec ranks movies by the similarity of their plot overviews.

Overviews are turned into TF-IDF vectors, compared pairwise with cosine
similarity, and the closest titles are returned for a chosen movie.

Examples:
  movierec recommend "The Dark Knight" --top 10
  movierec titles --search batman
  movierec terms Avatar
  movierec ingest --csv data/tmdb_5000_movies.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("CONFIG_PATH"), "Path to config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	cmd.AddCommand(
		NewRecommendCmd(opts),
		NewTitlesCmd(opts),
		NewTermsCmd(opts),
		NewIngestCmd(opts),
		NewPublishCmd(opts),
		NewVersionCmd(),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setupLogger keeps stdout for command output; logs go to stderr as text.
func setupLogger(w io.Writer, verbose bool) {
	level := "warn"
	if verbose {
		level = "info"
	}
	logger.SetDefaultLogger(logger.New(&logger.Config{
		Level:       level,
		Format:      "text",
		Output:      w,
		ServiceName: "movierec-cli",
	}))
}

func loadConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadApp builds the recommender from the configured catalog.
func loadApp(ctx context.Context, opts *globalOptions) (*app.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg, logger.GetDefault())
	if err != nil {
		return nil, fmt.Errorf("initializing recommender: %w", err)
	}
	return a, nil
}
