package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/schedule"
)

var replanCmd = &cobra.Command{
	Use:   "replan <plan-id>",
	Short: "Reschedule overdue sessions into the remaining days",
	RunE:  runReplan,
	Args:  cobra.ExactArgs(1),
}

func runReplan(cmd *cobra.Command, args []string) error {
	planID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid plan id %q", args[0])
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	svc := schedule.NewService(st)
	result, err := svc.Replan(cmd.Context(), planID)
	if err != nil {
		return err
	}

	if result.NoOp() {
		fmt.Println("No overdue sessions; the plan is on track.")
		return nil
	}
	fmt.Printf("Rescheduled %d overdue sessions.\n", result.RescheduledCount)
	if len(result.RemovedSessionIDs) > 0 {
		fmt.Printf("Final stretch removed %d sessions that no longer fit before the exam.\n", len(result.RemovedSessionIDs))
	}
	return nil
}
