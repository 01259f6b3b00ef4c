package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new study plan",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("name", "", "Plan name (required)")
	initCmd.Flags().String("exam", "", "Exam date, YYYY-MM-DD (required)")
	initCmd.Flags().Int("session-minutes", 50, "Duration of one study session in minutes")
	initCmd.Flags().String("budget", "0,120,120,120,120,120,240",
		"Study minutes per weekday, 7 comma-separated values starting with Sunday")
	initCmd.Flags().Bool("final-stretch", false, "Drop lowest-priority topics instead of failing when time runs short")
	initCmd.Flags().String("user", "", "Owner id")
	_ = initCmd.MarkFlagRequired("name")
	_ = initCmd.MarkFlagRequired("exam")
}

func runInit(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	examStr, _ := cmd.Flags().GetString("exam")
	sessionMinutes, _ := cmd.Flags().GetInt("session-minutes")
	budgetStr, _ := cmd.Flags().GetString("budget")
	finalStretch, _ := cmd.Flags().GetBool("final-stretch")
	user, _ := cmd.Flags().GetString("user")

	exam, err := time.ParseInLocation(plan.DateLayout, examStr, time.UTC)
	if err != nil {
		return fmt.Errorf("parse exam date: %w", err)
	}
	budget, err := parseBudget(budgetStr)
	if err != nil {
		return fmt.Errorf("parse budget: %w", err)
	}

	p := &plan.Plan{
		UserID:         user,
		Name:           name,
		ExamDate:       exam,
		SessionMinutes: sessionMinutes,
		FinalStretch:   finalStretch,
		StudyMinutes:   budget,
		Revision:       plan.DefaultRevisionConfig(),
	}
	if err := p.Validate(time.Now()); err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.CreatePlan(cmd.Context(), p); err != nil {
		return err
	}
	fmt.Printf("Created plan %d (%s), exam on %s\n", p.ID, p.Name, p.ExamDate.Format(plan.DateLayout))
	return nil
}

func parseBudget(s string) (plan.WeekdayMinutes, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 7 {
		return plan.WeekdayMinutes{}, fmt.Errorf("expected 7 values, got %d", len(parts))
	}
	var budget plan.WeekdayMinutes
	for i, part := range parts {
		m, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return plan.WeekdayMinutes{}, fmt.Errorf("value %d: %w", i+1, err)
		}
		if m < 0 {
			return plan.WeekdayMinutes{}, fmt.Errorf("value %d: negative minutes", i+1)
		}
		budget[i] = m
	}
	return budget, nil
}
