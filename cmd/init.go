package cmd

import (
	"github.com/spf13/cobra"

	"github.com/socratesone/knowledge-navigator/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize knav configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure knav for your knowledge base and generates a .knav.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
