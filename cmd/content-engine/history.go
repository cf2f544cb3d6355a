// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/history"
	"github.com/pdiddy/content-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past content-generation runs",
	Long: `History lists past runs recorded in the local SQLite database: topic,
status, error count, and artifact paths. Use --prune to trim old records.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().Int("prune", 0, "delete all but the newest N records before listing")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(types.HistoryConfig{Dir: viper.GetString("history.dir")})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if keep, _ := cmd.Flags().GetInt("prune"); keep > 0 {
		removed, err := store.Prune(ctx, keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Pruned %d record(s).\n", removed)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-4s  %-40s  %-9s  %-6s  %-19s  %s\n",
		"ID", "Topic", "Status", "Errors", "When", "Artifact")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range records {
		topic := r.Topic
		if len(topic) > 40 {
			topic = topic[:37] + "..."
		}
		when := ""
		if !r.CreatedAt.IsZero() {
			when = r.CreatedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%-4d  %-40s  %-9s  %-6d  %-19s  %s\n",
			r.ID, topic, r.Status, len(r.Errors), when, r.JSONPath)
	}

	fmt.Printf("\n%d run(s)\n", len(records))
	return nil
}
