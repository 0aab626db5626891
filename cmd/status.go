package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depdoctor/infrastructure/render"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var statusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "Print a one-line workspace health summary",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine(args)
	if err != nil {
		return err
	}

	cmd.Println(render.QuickStatus(engine.Report()))
	return nil
}
