package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumen-media/lumen-diagnostics/internal/event"
	"github.com/lumen-media/lumen-diagnostics/internal/report"
)

var (
	reportDuration   time.Duration
	reportDrainEvery time.Duration
	reportOut        string
	reportClipboard  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Collect diagnostics for a while and export a report",
	Long: `report runs a collection session: resource sampling is enabled for
--duration while the buffer is drained every --drain-every, then the
anonymized report is written to --out or, with --clipboard, to the
system clipboard.`,
	RunE: runReport,
}

// staticPicker satisfies the exporter's file-picker contract with a
// path fixed by flag. An empty path behaves like a dismissed dialog.
type staticPicker struct {
	path string
}

func (p staticPicker) PickSavePath() (string, bool, error) {
	return p.path, p.path != "", nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer p.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle := p.collector.Handle()
	handle.LogState(event.StateStartup)
	p.collector.EnableResourceCollection()
	p.logger.Info("collecting diagnostics",
		"duration", reportDuration, "drain_every", reportDrainEvery)

	ticker := time.NewTicker(reportDrainEvery)
	defer ticker.Stop()
	deadline := time.After(reportDuration)

collecting:
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("collection interrupted")
			break collecting
		case <-deadline:
			break collecting
		case <-ticker.C:
			p.collector.ProcessPending()
		}
	}

	p.collector.DisableResourceCollection()
	handle.LogState(event.StateShutdown)
	p.collector.ProcessPending()

	events := p.collector.Snapshot()
	startedAt := p.collector.StartedAt()

	var res report.Result
	if reportClipboard {
		res, err = p.exporter.ExportToClipboard(events, startedAt)
	} else {
		res, err = p.exporter.ExportToFile(events, startedAt, staticPicker{path: reportOut})
	}
	if err != nil {
		return err
	}

	switch res.State {
	case report.StateCancelled:
		fmt.Println("export cancelled: no destination given (use --out or --clipboard)")
	case report.StateSuccess:
		if res.Path != "" {
			fmt.Printf("report written to %s (%d events, %d bytes)\n",
				res.Path, len(events), res.Bytes)
		} else {
			fmt.Printf("report copied to clipboard (%d events, %d bytes)\n",
				len(events), res.Bytes)
		}
	}
	if dropped := p.collector.Dropped(); dropped > 0 {
		fmt.Printf("note: %d events were dropped at the intake queue\n", dropped)
	}
	return nil
}

func init() {
	reportCmd.Flags().DurationVar(&reportDuration, "duration", 10*time.Second,
		"how long to collect before exporting")
	reportCmd.Flags().DurationVar(&reportDrainEvery, "drain-every", 250*time.Millisecond,
		"buffer drain cadence")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "",
		"destination file for the report")
	reportCmd.Flags().BoolVar(&reportClipboard, "clipboard", false,
		"copy the report to the clipboard instead of a file")

	rootCmd.AddCommand(reportCmd)
}
