package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tcoelho/intelpost/internal/cache"
)

var (
	flagResearchType string
	flagJSON         bool
)

var researchCmd = &cobra.Command{
	Use:   "research <topic>",
	Short: "Research a topic and print the findings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPipeline()
		if err != nil {
			return err
		}
		defer cleanup()

		topic := strings.Join(args, " ")
		rec, err := p.orchestrator.Research(cmd.Context(), topic, flagResearchType)
		if err != nil {
			return err
		}

		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}

		printRecord(rec)
		return nil
	},
}

func init() {
	researchCmd.Flags().StringVar(&flagResearchType, "type", "company", "research type (company, trend, technology, news)")
	researchCmd.Flags().BoolVar(&flagJSON, "json", false, "print the raw research record as JSON")
}

func printRecord(rec *cache.Record) {
	fmt.Printf("Topic: %s (%s)\n", rec.Topic, rec.ResearchType)
	if rec.Cached {
		fmt.Println("Served from cache.")
	}
	fmt.Printf("Sentiment: %s\n\n", rec.Sentiment)

	fmt.Println("Summary:")
	fmt.Println(indent(rec.Summary))

	if rec.Insights != "" {
		fmt.Println("\nInsights:")
		fmt.Println(indent(rec.Insights))
	}
	if rec.KeyFacts != "" {
		fmt.Println("\nKey facts:")
		fmt.Println(indent(rec.KeyFacts))
	}

	if len(rec.NewsArticles) > 0 {
		fmt.Printf("\nNews (%d):\n", len(rec.NewsArticles))
		for _, a := range rec.NewsArticles {
			fmt.Printf("  - %s (%s)\n    %s\n", a.Title, a.Source, a.URL)
		}
	}
	if len(rec.WebResults) > 0 {
		fmt.Printf("\nWeb (%d):\n", len(rec.WebResults))
		for _, r := range rec.WebResults {
			fmt.Printf("  - %s\n    %s\n", r.Title, r.Link)
		}
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
