package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/hiresight/pkg/logx"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment/worker"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the resume enrichment workers",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logx.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if stats, err := container.EnrichmentQueue.Stats(ctx); err == nil {
		logx.Infof("Enrichment queue: %d ready, %d delayed", stats.Ready, stats.Delayed)
	}
	return newWorkerPool(container).Run(ctx)
}

func newWorkerPool(c *Container) *worker.Pool {
	return worker.NewPool(c.EnrichmentService, c.EnrichmentQueue, worker.Config{
		Workers:     c.Config.Worker.Concurrency,
		PollTimeout: c.Config.Worker.PollTimeout,
	})
}
