package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <plan-id> <file.xlsx>",
	Short: "Import subjects and topics from a spreadsheet",
	Long: `Import a syllabus spreadsheet into a plan.

One row per topic: subject name, subject weight (1-5), topic description,
topic weight (1-5). Subjects repeat across their topic rows and are
created once.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("sheet", "Sheet1", "Sheet name to read")
	importCmd.Flags().Int("start-row", 2, "First data row (1-based)")
}

func runImport(cmd *cobra.Command, args []string) error {
	planID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid plan id %q", args[0])
	}
	sheet, _ := cmd.Flags().GetString("sheet")
	startRow, _ := cmd.Flags().GetInt("start-row")

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The plan must exist before its syllabus does.
	if _, err := st.Plan(cmd.Context(), planID); err != nil {
		return err
	}

	im := importer.New(st, importer.Config{SheetName: sheet, StartRow: startRow})
	result, err := im.ImportFile(cmd.Context(), planID, args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d subjects and %d topics.\n", result.Subjects, result.Topics)
	for _, e := range result.Errors {
		fmt.Println("  skipped:", e)
	}
	return nil
}
