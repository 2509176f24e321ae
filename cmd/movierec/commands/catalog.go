package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTitlesCmd creates the titles command.
func NewTitlesCmd(opts *globalOptions) *cobra.Command {
	var (
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List catalog titles",
		Long: `List catalog titles in catalog order, optionally filtered by a
case-insensitive substring.

Examples:
  movierec titles
  movierec titles --search star --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(limit, "limit"); err != nil {
				return err
			}
			a, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			page := a.Recommend.ListMovies(search, limit, 0)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE")
			for _, m := range page.Movies {
				fmt.Fprintf(w, "%d\t%s\n", m.ID, m.Title)
			}
			w.Flush()
			if page.Total > len(page.Movies) {
				fmt.Fprintf(cmd.OutOrStdout(), "(%d of %d shown)\n", len(page.Movies), page.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only titles containing this text")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum titles to list")
	return cmd
}

// NewTermsCmd creates the terms command.
func NewTermsCmd(opts *globalOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "terms <title>",
		Short: "Show the strongest TF-IDF terms of a movie",
		Long: `Show the highest weighted overview terms of a movie. These are the
words that drive its similarity to other movies.

Examples:
  movierec terms Avatar
  movierec terms "Toy Story" --top 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(top, "top"); err != nil {
				return err
			}
			a, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			terms, ok := a.Recommend.TopTerms(args[0], top)
			if !ok {
				return fmt.Errorf("no movie titled %q in the catalog", args[0])
			}
			if len(terms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Overview has no indexed terms.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TERM\tWEIGHT")
			for _, t := range terms {
				fmt.Fprintf(w, "%s\t%.4f\n", t.Term, t.Weight)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 10, "Number of terms")
	return cmd
}
