// Command tuteliq is a small CLI for exercising the Tuteliq API from the
// terminal: run analyses, file reports, and check usage.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	tuteliq "github.com/Tuteliq/tuteliq-go"
)

var (
	apiKey   string
	baseURL  string
	timeout  time.Duration
	childAge int
)

var rootCmd = &cobra.Command{
	Use:   "tuteliq",
	Short: "Tuteliq child safety API client",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; flags and the environment win.
		_ = godotenv.Load()
		if apiKey == "" {
			apiKey = os.Getenv("TUTELIQ_API_KEY")
		}
		if baseURL == "" {
			baseURL = os.Getenv("TUTELIQ_BASE_URL")
		}
	},
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Run all detectors against a piece of text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		result, err := client.Analyze(ctx, &tuteliq.TextAnalysisRequest{
			Text:     args[0],
			ChildAge: childAge,
		})
		if err != nil {
			return describeErr(err)
		}
		return printJSON(result)
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show the current billing period's usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		summary, err := client.GetUsage(ctx)
		if err != nil {
			return describeErr(err)
		}
		return printJSON(summary)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [description]",
	Short: "File a manual report for flagged content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		report, err := client.CreateReport(ctx, &tuteliq.CreateReportRequest{
			Category:    category,
			Description: args[0],
		})
		if err != nil {
			return describeErr(err)
		}
		return printJSON(report)
	},
}

func newClient() (*tuteliq.Client, error) {
	if baseURL != "" {
		return tuteliq.New(tuteliq.WithAPIKey(apiKey), tuteliq.WithBaseURL(baseURL))
	}
	return tuteliq.New(tuteliq.WithAPIKey(apiKey))
}

// describeErr surfaces the API error detail instead of the bare message.
func describeErr(err error) error {
	var apiErr *tuteliq.APIError
	if errors.As(err, &apiErr) && apiErr.Suggestion != "" {
		return fmt.Errorf("%s (%s)", apiErr.Message, apiErr.Suggestion)
	}
	return err
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (defaults to TUTELIQ_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL override")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "per-command timeout")
	rootCmd.PersistentFlags().IntVar(&childAge, "child-age", 0, "age of the child involved")
	reportCmd.Flags().String("category", "bullying", "incident category")

	rootCmd.AddCommand(analyzeCmd, usageCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
