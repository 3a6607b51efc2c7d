package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagInvalidateType string
	flagPruneOlderThan string
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the research cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		st := store.Stats()
		fmt.Printf("Cache: %s\n", cfg.CachePath())
		fmt.Printf("TTL: %s\n", formatDuration(cfg.TTL()))
		fmt.Printf("Entries: %d (%d valid, %d expired)\n", st.Total, st.Valid, st.Expired)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached research result",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		n := store.ClearAll()
		if n == 0 {
			fmt.Println("Cache already empty.")
		} else {
			fmt.Printf("Cleared %d cached result(s).\n", n)
		}
		return nil
	},
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate <topic>",
	Short: "Remove the cached result for one topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		topic := strings.Join(args, " ")
		if store.Invalidate(topic, flagInvalidateType) {
			fmt.Printf("Invalidated cache for: %s\n", topic)
		} else {
			fmt.Printf("Nothing cached for: %s\n", topic)
		}
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove cached results older than a cutoff",
	Long: `Delete cached research older than the given age and reclaim space.

Uses the configured ttl unless overridden with --older-than.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		olderThan := cfg.TTL()
		if flagPruneOlderThan != "" {
			d, err := parseAge(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			olderThan = d
		}

		n := store.Prune(olderThan)
		if n == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d result(s) older than %s.\n", n, formatDuration(olderThan))
		}
		return nil
	},
}

func init() {
	cacheInvalidateCmd.Flags().StringVar(&flagInvalidateType, "type", "company", "research type of the entry")
	cachePruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override cutoff age (e.g., 7d, 48h)")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheInvalidateCmd)
	cacheCmd.AddCommand(cachePruneCmd)
}

func parseAge(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 && d == time.Duration(days)*24*time.Hour {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
