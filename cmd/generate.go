package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tcoelho/intelpost/internal/content"
)

var (
	flagStyle string
	flagAngle string
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Research a topic and generate a LinkedIn post",
	Long: `Research a topic (cached when possible) and generate a LinkedIn post in
one of the supported styles:

  News Analysis, Educational Explainer, Personal Opinion,
  Engagement Question, Trend Prediction

Any other style value falls back to a generic informative post.`,
	Args: cobra.MinimumNArgs(1),
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

		style := content.ParseStyle(flagStyle)
		post := p.generator.Generate(cmd.Context(), rec.Topic, rec.Summary, style, flagAngle)

		fmt.Println(post)
		return nil
	},
}

var anglesCmd = &cobra.Command{
	Use:   "angles <topic>",
	Short: "Suggest post angles for a topic",
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

		fmt.Println(p.orchestrator.Angles(cmd.Context(), rec.Topic, rec.Summary))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&flagStyle, "style", "News Analysis", "post style")
	generateCmd.Flags().StringVar(&flagAngle, "angle", "", "specific angle to focus on")
	generateCmd.Flags().StringVar(&flagResearchType, "type", "company", "research type")
	anglesCmd.Flags().StringVar(&flagResearchType, "type", "company", "research type")
}
