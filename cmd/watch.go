package cmd

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/schedule"
	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep every plan's calendar repaired in the background",
	Long: `Run a daemon that periodically scans all plans for overdue sessions
and reschedules them into the remaining days before each exam.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("interval", watch.DefaultInterval, "How often to sweep for overdue sessions")
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(schedule.NewService(st), st, interval)

	// First sweep right away; gocron fires the next one after a full interval.
	if err := w.RunOnce(ctx); err != nil {
		log.Printf("watch: initial sweep failed: %v", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	log.Printf("watch: sweeping every %s. Press Ctrl+C to stop.", interval)

	<-ctx.Done()
	log.Println("watch: stopping...")
	w.Stop()

	// Give an in-flight sweep a moment to wind down.
	time.Sleep(100 * time.Millisecond)
	return nil
}
