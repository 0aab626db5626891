package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported ecosystems and their manifest files",
	Args:  cobra.NoArgs,
	Run:   runList,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) {
	registry := injectEngineFactory().Registry()

	for _, eco := range registry.All() {
		profile := eco.Profile()
		cmd.Printf("%-10s manifests: %s\n",
			profile.Name, strings.Join(profile.ManifestFiles, ", "))
	}
}
