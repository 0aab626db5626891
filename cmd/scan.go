package cmd

import (
	"encoding/json"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depdoctor/infrastructure/gitcontext"
	"github.com/rios0rios0/depdoctor/infrastructure/render"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var jsonOutput bool

//nolint:gochecknoglobals // required by cobra CLI pattern
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a repository and print the full dependency report",
	Long: `Parse every detected ecosystem's manifests, check each declared package
for local installation evidence, escalate packages referenced from source
code, and print the full markdown report with the health score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Print the raw report as JSON instead of markdown")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine(args)
	if err != nil {
		return err
	}

	report := engine.Report()

	if jsonOutput {
		data, marshalErr := json.MarshalIndent(report, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to encode report: %w", marshalErr)
		}
		cmd.Println(string(data))
		return nil
	}

	if gitCtx, ctxErr := gitcontext.Extract(engine.Root()); ctxErr == nil {
		cmd.Println(gitCtx.Summary())
		cmd.Println()
	} else {
		logger.Debugf("No git context: %v", ctxErr)
	}

	cmd.Println(render.DependencyReport(report))
	return nil
}
