// Package importer loads a plan's syllabus from a spreadsheet: one row
// per topic, with the subject repeated on each of its rows.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/plan"
	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/store"
)

// Config controls where rows are read from.
type Config struct {
	SheetName string
	StartRow  int // 1-based first data row; rows above are headers
}

// DefaultConfig reads "Sheet1" and skips a single header row.
func DefaultConfig() Config {
	return Config{SheetName: "Sheet1", StartRow: 2}
}

// Columns: A subject name, B subject weight (1-5), C topic description,
// D topic weight (1-5).
const (
	colSubject       = 0
	colSubjectWeight = 1
	colTopic         = 2
	colTopicWeight   = 3
)

// Result summarizes one import run.
type Result struct {
	Subjects int
	Topics   int
	Errors   []string
}

// Importer writes imported subjects and topics through the store.
type Importer struct {
	repo store.Repo
	cfg  Config
}

// New creates an Importer.
func New(repo store.Repo, cfg Config) *Importer {
	if cfg.SheetName == "" {
		cfg.SheetName = DefaultConfig().SheetName
	}
	if cfg.StartRow < 1 {
		cfg.StartRow = DefaultConfig().StartRow
	}
	return &Importer{repo: repo, cfg: cfg}
}

// ImportFile reads the spreadsheet at path and creates the subjects and
// topics for the given plan. Rows with parse errors are skipped and
// reported in the result rather than aborting the run.
func (im *Importer) ImportFile(ctx context.Context, planID int64, path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(im.cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", im.cfg.SheetName, err)
	}

	// Existing subjects are reused by name so re-importing an amended
	// sheet does not duplicate them.
	existing, err := im.repo.Subjects(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	subjectByName := make(map[string]*plan.Subject, len(existing))
	for i := range existing {
		subjectByName[strings.ToLower(existing[i].Name)] = &existing[i]
	}

	result := &Result{}
	position := len(existing)

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < im.cfg.StartRow {
			continue
		}
		if isBlank(row) {
			continue
		}

		name, subjWeight, topic, topicWeight, err := parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		subj, ok := subjectByName[strings.ToLower(name)]
		if !ok {
			subj = &plan.Subject{
				PlanID:   planID,
				Name:     name,
				Weight:   subjWeight,
				Position: position,
			}
			if err := im.repo.CreateSubject(ctx, subj); err != nil {
				return nil, fmt.Errorf("row %d: create subject %q: %w", rowNum, name, err)
			}
			subjectByName[strings.ToLower(name)] = subj
			position++
			result.Subjects++
		}

		t := &plan.Topic{
			SubjectID:   subj.ID,
			Description: topic,
			Weight:      topicWeight,
			Status:      plan.TopicPending,
			Position:    result.Topics,
		}
		if err := im.repo.CreateTopic(ctx, t); err != nil {
			return nil, fmt.Errorf("row %d: create topic: %w", rowNum, err)
		}
		result.Topics++
	}
	return result, nil
}

func parseRow(row []string) (subject string, subjectWeight int, topic string, topicWeight int, err error) {
	subject = cell(row, colSubject)
	topic = cell(row, colTopic)
	if subject == "" {
		return "", 0, "", 0, fmt.Errorf("missing subject name")
	}
	if topic == "" {
		return "", 0, "", 0, fmt.Errorf("missing topic description")
	}
	subjectWeight, err = parseWeight(cell(row, colSubjectWeight))
	if err != nil {
		return "", 0, "", 0, fmt.Errorf("subject weight: %w", err)
	}
	topicWeight, err = parseWeight(cell(row, colTopicWeight))
	if err != nil {
		return "", 0, "", 0, fmt.Errorf("topic weight: %w", err)
	}
	return subject, subjectWeight, topic, topicWeight, nil
}

func parseWeight(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	w, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if w < plan.MinWeight || w > plan.MaxWeight {
		return 0, fmt.Errorf("%d out of range %d-%d", w, plan.MinWeight, plan.MaxWeight)
	}
	return w, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
