package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	statusFilter string
	limit        int
)

func init() {
	matchesCmd.Flags().StringVar(&statusFilter, "status", "", "Only list matches with this status")
	matchesCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of matches to list")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(playerStatsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", false)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List recent matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if statusFilter != "" {
			q.Set("status", statusFilter)
		}
		if limit > 0 {
			q.Set("limit", fmt.Sprint(limit))
		}
		endpoint := "/user/matches"
		if len(q) > 0 {
			endpoint += "?" + q.Encode()
		}
		return performGetRequest(endpoint, false)
	},
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard <matchID>",
	Short: "Show the scoreboard of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/user/matches/"+url.PathEscape(args[0])+"/scoreboard", false)
	},
}

var playerStatsCmd = &cobra.Command{
	Use:   "player-stats <playerID>",
	Short: "Show career batting and bowling totals of a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if token == "" {
			return fmt.Errorf("player-stats requires --token")
		}
		return performGetRequest("/players/"+url.PathEscape(args[0])+"/stats", true)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", false)
	},
}

func performGetRequest(endpoint string, authenticated bool) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
