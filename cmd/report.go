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
	"github.com/ttobae/daily-contrib/internal/config"
	"github.com/ttobae/daily-contrib/internal/gateway"
	"github.com/ttobae/daily-contrib/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates today's contributor activity report and publishes it as an issue",
	Long: `Checks every contributor of the source repository for qualifying activity
(push or create events) on today's calendar date in the configured timezone,
then publishes the Markdown summary as a new issue on the destination
repository. With --dry-run the report is printed to stdout instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		configPath, _ := cmd.Flags().GetString("config")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}
		location, err := cfg.Location()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		executor := gateway.NewExecutor(nil, logger)
		fetcher := gateway.NewActivityGateway(executor, cfg.SourceOwner, cfg.SourceRepo, cfg.Token, logger)
		aggregator := usecase.NewAggregator(fetcher, location, logger)

		report := aggregator.GenerateReport(ctx, time.Now())

		if dryRun {
			fmt.Println(report.Title())
			fmt.Println()
			fmt.Println(report.Body())
		} else {
			publisher, err := gateway.NewIssuePublisher(cfg.Token, cfg.DestOwner, cfg.DestRepo, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create issue publisher: %v\n", err)
				os.Exit(1)
			}
			issueURL, err := publisher.PublishIssue(ctx, report.Title(), report.Body())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to publish report: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(issueURL)
		}

		// A degraded report is still worth publishing (it is the alert that
		// something broke), but the run itself should not look successful.
		if report.Degraded {
			fmt.Fprintln(os.Stderr, "Report degraded: the contributor list could not be fetched.")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("config", "", "Path to an optional YAML config file")
	reportCmd.Flags().Bool("dry-run", false, "Print the report to stdout instead of publishing an issue")
}
