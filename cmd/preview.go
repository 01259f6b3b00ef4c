package cmd

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
)

var previewCmd = &cobra.Command{
	Use:   "preview <plan-id>",
	Short: "Show the upcoming study calendar",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().Int("days", 14, "How many days ahead to show")
}

var (
	dateStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	newTopicStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	reviewStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
	reinforceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Strikethrough(true)
)

func runPreview(cmd *cobra.Command, args []string) error {
	planID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid plan id %q", args[0])
	}
	days, _ := cmd.Flags().GetInt("days")

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	p, err := st.Plan(ctx, planID)
	if err != nil {
		return err
	}
	sessions, err := st.Sessions(ctx, planID)
	if err != nil {
		return err
	}

	today := plan.DateOf(time.Now())
	until := today.AddDate(0, 0, days)
	if until.After(p.ExamDate) {
		until = p.ExamDate
	}

	byDay := make(map[time.Time][]plan.Session)
	for _, s := range sessions {
		d := plan.DateOf(s.Date)
		if !d.Before(today) && !d.After(until) {
			byDay[d] = append(byDay[d], s)
		}
	}

	fmt.Printf("%s — exam on %s, %d postponements\n\n",
		p.Name, p.ExamDate.Format(plan.DateLayout), p.Postponements)

	shown := 0
	for day := today; !day.After(until); day = day.AddDate(0, 0, 1) {
		daySessions := byDay[day]
		if len(daySessions) == 0 {
			continue
		}
		fmt.Println(dateStyle.Render(day.Format("Mon 2006-01-02")))
		for _, s := range daySessions {
			label := fmt.Sprintf("%s — %s", s.SubjectName, s.TopicDescription)
			fmt.Printf("  %s %s\n", typeStyle(s).Render(typeLabel(s.Type)), styleStatus(s, label))
			shown++
		}
	}
	if shown == 0 {
		fmt.Println("No sessions in the selected window. Run generate first.")
	}
	return nil
}

func typeStyle(s plan.Session) lipgloss.Style {
	switch s.Type {
	case plan.TypeNewTopic:
		return newTopicStyle
	case plan.TypeReinforcement:
		return reinforceStyle
	default:
		return reviewStyle
	}
}

func typeLabel(t plan.SessionType) string {
	switch t {
	case plan.TypeNewTopic:
		return "[study]"
	case plan.TypeConsolidatedReview:
		return "[consolidate]"
	case plan.TypeSpacedReview:
		return "[review]"
	case plan.TypeReinforcement:
		return "[reinforce]"
	default:
		return "[?]"
	}
}

func styleStatus(s plan.Session, label string) string {
	if s.Status == plan.SessionCompleted {
		return doneStyle.Render(label)
	}
	return label
}
