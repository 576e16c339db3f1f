package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumen-media/lumen-diagnostics/internal/collect"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the collector and print live status until interrupted",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer p.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p.collector.EnableResourceCollection()

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-ticker.C:
			p.collector.ProcessPending()
			printStatus(p.collector)
		}
	}
}

func printStatus(c *collect.Collector) {
	st := c.Status()
	switch st.Kind {
	case collect.StatusEnabled:
		fmt.Printf("\rcollection %s since %s | %d events buffered | %d dropped",
			st.Kind, st.Since.Format(time.TimeOnly), c.EventCount(), c.Dropped())
	case collect.StatusError:
		fmt.Printf("\rcollection error: %s", st.Message)
	default:
		fmt.Printf("\rcollection %s | %d events buffered", st.Kind, c.EventCount())
	}
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second,
		"status refresh and drain cadence")

	rootCmd.AddCommand(watchCmd)
}
