// internal/cli/root.go
package cli

import (
	"context"
	"fmt"

	"github.com/law-makers/quotes/internal/app"
	"github.com/law-makers/quotes/internal/config"
	"github.com/law-makers/quotes/internal/search"
	"github.com/law-makers/quotes/internal/ui"
	"github.com/law-makers/quotes/internal/utils/output"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// newRootCmd builds the command tree. The root command scrapes a keyword.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quotes [keyword]",
		Short: "Collect every quotation matching a keyword into a CSV file",
		Long: `Quotes searches creativequotations.com for a keyword, walks every result
page in order and writes each (quote, author) pair to a file.

Without a keyword the configured default ("god") is used and the result is
written to <keyword>.csv in the current directory.`,
		Example: `  # Scrape the default keyword into god.csv
  quotes

  # Scrape another keyword
  quotes love

  # Write Markdown instead of CSV
  quotes love -o love.md

  # Only report how many matches exist
  quotes count wisdom`,
		Version:           version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
		RunE:              runScrape,
	}

	config.RegisterFlags(rootCmd)
	rootCmd.Flags().StringP("output", "o", "", "Output file (.csv, .json or .md); defaults to <keyword>.csv")

	rootCmd.Flags().BoolP("help", "h", false, "Help for quotes")
	rootCmd.Flags().Bool("version", false, "Version for quotes")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)

	rootCmd.AddCommand(newCountCmd())
	return rootCmd
}

// Execute runs the CLI with ctx as the root context. Cancelling ctx aborts
// any request in flight.
func Execute(ctx context.Context) error {
	return execute(ctx, newRootCmd())
}

func execute(ctx context.Context, rootCmd *cobra.Command) error {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if a := GetAppFromCmd(cmd); a != nil {
		_ = a.Close()
	}
	return err
}

// initApp loads configuration and builds the Application before any command runs
func initApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.Logger.Debug().Str("user_agent", cfg.UserAgent).Msg("Configuration loaded")

	SetApp(cmd, a)
	return nil
}

func keywordArg(a *app.Application, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.Config.Keyword
}

func runScrape(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	cfg := a.Config

	keyword := keywordArg(a, args)
	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = output.FilenameForKeyword(keyword, ".csv")
	}

	if !cfg.Quiet && !cfg.JSONLog && !cfg.NoProgress {
		attachProgress(cmd, a.Driver)
	}

	result, err := a.Scrape(cmd.Context(), keyword, outPath)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d quotes (%d pages) in %s\n",
			ui.Success("✓ Saved"), len(result.Quotes), result.Pages, ui.Bold(outPath))
	}
	return nil
}

// attachProgress draws a page progress bar on stderr while the driver runs
func attachProgress(cmd *cobra.Command, d *search.Driver) {
	var bar *progressbar.ProgressBar
	d.OnPage(func(p search.PageProgress) {
		if bar == nil {
			bar = progressbar.NewOptions(p.Pages,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("pages"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Add(1)
		if p.Page == p.Pages {
			_ = bar.Finish()
		}
	})
}
