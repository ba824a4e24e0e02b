package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/socratesone/knowledge-navigator/internal/anchor"
	"github.com/socratesone/knowledge-navigator/internal/content"
	"github.com/socratesone/knowledge-navigator/internal/navigation"
	"github.com/socratesone/knowledge-navigator/internal/toc"
	"github.com/socratesone/knowledge-navigator/internal/walker"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest and content directory",
	Long: `Checks that the navigation manifest parses, that every topic has a
matching article, and that every article's frontmatter is readable.
Articles not referenced by the manifest are reported as warnings.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manifest, err := navigation.LoadManifest(cfg.ManifestFile())
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	articles, err := walker.Walk(walker.Config{
		RootDir:     cfg.ContentDir,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		MaxFileSize: cfg.MaxFileSize,
	})
	if err != nil {
		return fmt.Errorf("scanning content: %w", err)
	}

	bySlug := make(map[string]walker.ArticleInfo, len(articles))
	for _, a := range articles {
		bySlug[a.Slug] = a
	}

	var problems, warnings int

	tree := navigation.NewTree(manifest)
	referenced := make(map[string]bool)
	seenSlugs := make(map[string]string)
	for _, node := range tree.Topics() {
		if prev, dup := seenSlugs[node.Slug]; dup {
			fmt.Printf("ERROR  topics %q and %q share slug %q\n", prev, node.ID, node.Slug)
			problems++
		}
		seenSlugs[node.Slug] = node.ID

		article, ok := bySlug[node.Slug]
		if !ok {
			fmt.Printf("ERROR  topic %q (%s): no article %s.md under %s\n",
				node.Title, node.ID, node.Slug, cfg.ContentDir)
			problems++
			continue
		}
		referenced[node.Slug] = true

		raw, err := os.ReadFile(article.Path)
		if err != nil {
			fmt.Printf("ERROR  %s: %v\n", article.RelPath, err)
			problems++
			continue
		}
		_, body, err := content.ParseFrontMatter(raw)
		if err != nil {
			fmt.Printf("ERROR  %s: %v\n", article.RelPath, err)
			problems++
			continue
		}

		// Every heading must yield a usable deep-link anchor.
		existing := make(map[string]struct{})
		for _, h := range toc.ExtractHeadings(body) {
			id := anchor.GenerateUnique(h.Text, existing, anchor.Options{})
			if !anchor.IsValid(id) {
				fmt.Printf("ERROR  %s: heading %q produces invalid anchor %q\n", article.RelPath, h.Text, id)
				problems++
			}
		}
	}

	for _, a := range articles {
		if !referenced[a.Slug] {
			fmt.Printf("WARN   %s is not referenced by the manifest\n", a.RelPath)
			warnings++
		}
	}

	fmt.Printf("\n%d topics, %d articles, %d problems, %d warnings\n",
		len(tree.Topics()), len(articles), problems, warnings)

	if problems > 0 {
		return fmt.Errorf("check failed with %d problems", problems)
	}
	return nil
}
