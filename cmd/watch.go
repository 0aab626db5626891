package cmd

import (
	"context"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depdoctor/application"
	"github.com/rios0rios0/depdoctor/infrastructure/render"
	"github.com/rios0rios0/depdoctor/infrastructure/watch"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch manifests and reprint the health status on changes",
	Long: `Watch the repository root for manifest changes. Every change
invalidates the scan cache, triggers a rescan, and prints the new
one-line health status. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(watchCmd)
}

// rescanReporter invalidates the engine and prints the freshly scanned
// status whenever the watcher signals a manifest change.
type rescanReporter struct {
	engine *application.Engine
	print  func(...any)
}

func (r *rescanReporter) Invalidate() {
	r.engine.Invalidate()
	r.print(render.QuickStatus(r.engine.Report()))
}

func runWatch(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine(args)
	if err != nil {
		return err
	}

	cmd.Println(render.QuickStatus(engine.Report()))

	reporter := &rescanReporter{engine: engine, print: cmd.Println}

	watcher, watchErr := watch.New(reporter, engine.Root(),
		injectEngineFactory().Registry().ManifestNames())
	if watchErr != nil {
		return watchErr
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("Watching %s for manifest changes...", engine.Root())

	if runErr := watcher.Run(ctx); runErr != nil && runErr != context.Canceled {
		return runErr
	}
	return nil
}
