package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/schedule"
)

var generateCmd = &cobra.Command{
	Use:   "generate <plan-id>",
	Short: "Build the plan's study calendar",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
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
	result, err := svc.Generate(cmd.Context(), planID)
	if err != nil {
		var infeasible *schedule.InfeasibleError
		if errors.As(err, &infeasible) {
			fmt.Println("The schedule does not fit before the exam date. Unscheduled:")
			for _, it := range infeasible.Items {
				fmt.Printf("  - %s: %s\n", it.Subject, it.Description)
			}
			fmt.Println("Increase the weekly budget, move the exam date, or enable final-stretch mode.")
		}
		return err
	}

	if result.Empty() {
		fmt.Println("Nothing to schedule: no pending topics without sessions.")
		return nil
	}

	fmt.Printf("Scheduled %d sessions (batch %s).\n", len(result.Sessions), result.BatchID)
	if len(result.Exclusions) > 0 {
		fmt.Printf("Final stretch dropped %d topics for lack of capacity.\n", len(result.Exclusions))
	}
	if result.DroppedRevisions > 0 {
		fmt.Printf("%d revision sessions did not fit before the exam and were skipped.\n", result.DroppedRevisions)
	}
	return nil
}
