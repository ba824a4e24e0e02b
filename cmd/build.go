package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/socratesone/knowledge-navigator/internal/site"
	"github.com/socratesone/knowledge-navigator/internal/store"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static site from the content directory",
	Long: `Cleans every article, renders it to HTML with its table of contents,
and writes a self-contained static site with navigation and client-side
search to the output directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("no-cache", false, "render every article even if unchanged")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}

	var st *store.Store
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		st, err = store.Open(cfg.StorePath())
		if err != nil {
			// The cache is an optimization; build without it.
			fmt.Printf("Warning: render cache unavailable: %v\n", err)
			st = nil
		} else {
			defer st.Close()
		}
	}

	generator := site.NewGenerator(cfg, st)
	lib, err := generator.Generate(context.Background())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d topics)\n", cfg.OutputDir, len(lib.Topics))
	return nil
}
