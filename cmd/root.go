package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcoelho/intelpost/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagNoCache bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "intelpost",
	Short: "Competitive intelligence research and LinkedIn post generator",
	Long: `intelpost researches a topic through news and web search, summarizes the
findings with an LLM, and turns them into a styled LinkedIn post. Research
results are cached locally so repeated runs on the same topic are instant.`,
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "bypass the research cache")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log pipeline activity to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(anglesCmd)
	rootCmd.AddCommand(cacheCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("intelpost %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	p, cleanup, err := buildPipeline()
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(tui.RunOpts{
		Orchestrator: p.orchestrator,
		Generator:    p.generator,
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
