package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/gobalance/internal/domain"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobalance-cli",
		Short: "GoBalance CLI tool",
		Long:  `A command line interface for interacting with the GoBalance API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBalance API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Daily balance operations",
	}
	balanceCmd.AddCommand(balanceGetCmd(), consolidateCmd())
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func balanceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <date>",
		Short: "Get the consolidated balance for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDay(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
			}
			return apiGet("/api/v1/balances/" + day.String())
		},
	}
}

func consolidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consolidate <date>",
		Short: "Force recomputation of a day and its cascade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDay(args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
			}

			client := &http.Client{Timeout: timeout}
			resp, err := client.Post(baseURL+"/api/v1/balances/"+day.String()+"/consolidate", "application/json", nil)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			return printResponse(resp)
		},
	}
}

func reportCmd() *cobra.Command {
	var includeDays, archive bool

	cmd := &cobra.Command{
		Use:   "report <start> <end>",
		Short: "Build a period report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := domain.ParseDay(args[0])
			if err != nil {
				return fmt.Errorf("invalid start date %q", args[0])
			}
			end, err := domain.ParseDay(args[1])
			if err != nil {
				return fmt.Errorf("invalid end date %q", args[1])
			}

			query := url.Values{}
			query.Set("start", start.String())
			query.Set("end", end.String())
			if includeDays {
				query.Set("include_days", "true")
			}
			if archive {
				query.Set("archive", "true")
			}

			return apiGet("/api/v1/reports?" + query.Encode())
		},
	}

	cmd.Flags().BoolVar(&includeDays, "days", false, "Include per-day balances")
	cmd.Flags().BoolVar(&archive, "archive", false, "Archive the report as a snapshot")

	return cmd
}

func apiGet(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return nil
	}

	printJSON(pretty)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(out))
}
