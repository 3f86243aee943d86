// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bhimrazy/ghweekly/internal/chart"
	"github.com/bhimrazy/ghweekly/internal/domain"
	"github.com/bhimrazy/ghweekly/internal/gateway"
	"github.com/bhimrazy/ghweekly/internal/report"
	"github.com/bhimrazy/ghweekly/internal/usecase"
)

const dateLayout = "2006-01-02"

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Fetch weekly commit counts for a user across repositories",
	Long: `Fetches commits authored by a GitHub user in each given repository,
buckets them into Monday-aligned weeks over the date range, and prints a
weekly count table. With --plot the table is also rendered as a stacked
bar chart (HTML).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		username, _ := cmd.Flags().GetString("username")
		repos, _ := cmd.Flags().GetStringSlice("repos")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		token, _ := cmd.Flags().GetString("token")
		includeCommitter, _ := cmd.Flags().GetBool("include-committer")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		plot, _ := cmd.Flags().GetBool("plot")
		output, _ := cmd.Flags().GetString("output")

		// An empty --token falls back to the conventional env variable.
		// Running without any token is legal, just rate-limited harder.
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}

		now := time.Now().UTC()
		start, err := parseDateFlag(startStr, time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		end, err := parseDateFlag(endStr, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, gateway.Options{MergeCommitter: includeCommitter}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger, concurrency)

		logger.Printf("fetching weekly commits for %s", username)
		table, err := aggregator.Aggregate(ctx, username, repos, start, end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := report.WriteTable(os.Stdout, table); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print table: %v\n", err)
			os.Exit(1)
		}
		if err := report.WriteSummary(os.Stdout, table); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print summary: %v\n", err)
			os.Exit(1)
		}

		if plot {
			logger.Printf("creating chart: %s", output)
			if err := chart.RenderFile(output, table, username); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to render chart: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Chart saved to %s\n", output)
		}
	},
}

// parseDateFlag parses a YYYY-MM-DD flag value, returning fallback when
// the flag was not set. A malformed value is a validation error.
func parseDateFlag(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{
			Msg: fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", value),
		}
	}
	return t, nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("username", "u", "", "GitHub username (required)")
	statsCmd.Flags().StringSliceP("repos", "r", nil, "Repositories as owner/repo, comma separated or repeated (required)")
	statsCmd.MarkFlagRequired("username")
	statsCmd.MarkFlagRequired("repos")
	statsCmd.Flags().String("start", "", "Start date (YYYY-MM-DD), default: January 1 of the current year")
	statsCmd.Flags().String("end", "", "End date (YYYY-MM-DD), default: today")
	statsCmd.Flags().String("token", "", "GitHub token (optional, for higher rate limits; falls back to GITHUB_TOKEN)")
	statsCmd.Flags().Bool("include-committer", false, "Also count commits where the user is the committer, deduplicated by SHA")
	statsCmd.Flags().Int("concurrency", 1, "Number of repositories fetched in parallel")
	statsCmd.Flags().Bool("plot", false, "Render a stacked bar chart")
	statsCmd.Flags().String("output", "weekly_commits.html", "Output file for the chart")
}
