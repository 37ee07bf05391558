package cmd

import (
	"github.com/spf13/cobra"

	"evalgen/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize evalgen configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the dataset build and generates a .evalgen.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
