package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetSummary      = "Summary"
	sheetAnswers      = "Answers"
	sheetByTopic      = "ByTopic"
	sheetByDifficulty = "ByDifficulty"
)

type reportService struct {
	logger *slog.Logger
}

func NewReportService(logger *slog.Logger) ReportService {
	return &reportService{logger: logger}
}

// ExportSubmission renders an already loaded submission detail as an xlsx workbook
func (s *reportService) ExportSubmission(ctx context.Context, detail *models.SubmissionResponse) (*ExportedReport, error) {
	if detail == nil {
		return nil, fmt.Errorf("submission detail is required")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{sheetAnswers, sheetByTopic, sheetByDifficulty} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := writeRows(f, sheetSummary, summaryRows(detail)); err != nil {
		return nil, err
	}
	if err := writeRows(f, sheetAnswers, answerRows(detail)); err != nil {
		return nil, err
	}
	if err := writeRows(f, sheetByTopic, topicRows(detail.Statistics)); err != nil {
		return nil, err
	}
	if err := writeRows(f, sheetByDifficulty, difficultyRows(detail.Statistics)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Submission exported", "submission_id", detail.SubmissionID, "bytes", buf.Len())

	return &ExportedReport{
		Filename:    fmt.Sprintf("submission-%d.xlsx", detail.SubmissionID),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func summaryRows(d *models.SubmissionResponse) [][]interface{} {
	return [][]interface{}{
		{"Field", "Value"},
		{"Submission ID", d.SubmissionID},
		{"Assessment ID", d.AssessmentID},
		{"Student ID", d.StudentID},
		{"Subject ID", d.SubjectID},
		{"Total Questions", d.TotalQuestions},
		{"Correct Answers", d.CorrectAnswers},
		{"Score", d.Score},
		{"Performance Level", string(d.PerformanceLevel)},
		{"Submitted At", d.SubmittedAt.Format("2006-01-02 15:04:05")},
		{"Time Taken (s)", d.TimeTaken},
		{"Improvement Evaluated", d.ImprovementEvaluated},
	}
}

func answerRows(d *models.SubmissionResponse) [][]interface{} {
	rows := [][]interface{}{{"#", "Question ID", "Chosen Option", "Correct Option", "Correct"}}
	for i, a := range d.Answers {
		rows = append(rows, []interface{}{i + 1, a.QuestionID, a.ChosenOptionID, a.CorrectOptionID, a.IsCorrect})
	}
	return rows
}

func topicRows(stats models.Statistics) [][]interface{} {
	ids := make([]uint, 0, len(stats.ByTopic))
	for id := range stats.ByTopic {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	rows := [][]interface{}{{"Topic ID", "Total", "Correct", "Accuracy"}}
	for _, id := range ids {
		b := stats.ByTopic[id]
		rows = append(rows, []interface{}{id, b.Total, b.Correct, b.Accuracy})
	}
	return rows
}

func difficultyRows(stats models.Statistics) [][]interface{} {
	rows := [][]interface{}{{"Difficulty", "Total", "Correct", "Accuracy"}}
	for _, level := range models.DifficultyLevels {
		b, ok := stats.ByDifficulty[level]
		if !ok {
			continue
		}
		rows = append(rows, []interface{}{string(level), b.Total, b.Correct, b.Accuracy})
	}
	return rows
}
