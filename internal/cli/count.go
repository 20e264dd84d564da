package cli

import (
	"fmt"

	"github.com/law-makers/quotes/internal/search"
	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count [keyword]",
		Short: "Print how many quotations match a keyword",
		Long: `Count issues a single count-only query and prints the number of matches
together with the number of result pages a full scrape would fetch.`,
		Example: `  quotes count god`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetAppFromCmd(cmd)
			if a == nil {
				return fmt.Errorf("application not initialized")
			}

			keyword := keywordArg(a, args)
			total, err := a.Count(cmd.Context(), keyword)
			if err != nil {
				return err
			}

			if a.Config.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), total)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d matches for %q (%d pages)\n",
				total, keyword, search.PageCount(total, search.PageSize))
			return nil
		},
	}
}
