package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depdoctor/infrastructure/render"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var fixCmd = &cobra.Command{
	Use:   "fix [path]",
	Short: "Print install commands for all missing packages",
	Long: `Generate ready-to-run install commands for every missing package,
batched per ecosystem. Commands are printed, never executed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine(args)
	if err != nil {
		return err
	}

	commands := render.InstallCommands(engine.Report())
	if len(commands) == 0 {
		cmd.Println("All dependencies are installed.")
		return nil
	}

	for _, command := range commands {
		cmd.Println(command)
	}
	return nil
}
