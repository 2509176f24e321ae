package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/timmy/movierec/internal/service"
)

// NewRecommendCmd creates the recommend command.
func NewRecommendCmd(opts *globalOptions) *cobra.Command {
	var (
		top     int
		posters bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Show movies with the most similar plots",
		Long: `Show the movies whose overviews are closest to the given title.

The title must match the catalog exactly (case-sensitive). When it does not,
similar titles are suggested.

Examples:
  movierec recommend Avatar
  movierec recommend "The Dark Knight" --top 10 --posters
  movierec recommend Avatar --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(top, "top"); err != nil {
				return err
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be table or json, got %q", format)
			}

			a, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			title := args[0]
			resp, err := a.Recommend.Recommend(cmd.Context(), &service.RecommendRequest{
				Title:          title,
				TopN:           top,
				IncludePosters: &posters,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			if !resp.Found {
				fmt.Fprintf(out, "No movie titled %q in the catalog.\n", title)
				if hints := a.Recommend.SuggestTitles(title, 5); len(hints) > 0 {
					fmt.Fprintf(out, "Did you mean: %s\n", strings.Join(hints, ", "))
				}
				return nil
			}
			if resp.Total == 0 {
				fmt.Fprintln(out, "No other movies to recommend.")
				return nil
			}
			printRecommendations(cmd, resp, posters)
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 5, "Number of recommendations")
	cmd.Flags().BoolVar(&posters, "posters", false, "Resolve poster URLs from TMDB")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json)")
	return cmd
}

func printRecommendations(cmd *cobra.Command, resp *service.RecommendResponse, posters bool) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := "#\tTITLE\tSCORE\tRATING"
	if posters {
		header += "\tPOSTER"
	}
	fmt.Fprintln(w, header)
	for i, r := range resp.Results {
		rating := "-"
		if r.Rating != nil {
			rating = fmt.Sprintf("%.1f", *r.Rating)
		}
		line := fmt.Sprintf("%d\t%s\t%.4f\t%s", i+1, truncate(r.Title, 48), r.Score, rating)
		if posters {
			line += "\t" + r.PosterURL
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
}
