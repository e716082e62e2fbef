package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReportService_ExportSubmission(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	sub, err := f.service.Submit(ctx, submitRequest("asm-xlsx", "stu-1", answer(1, true), answer(2, false), answer(4, true)))
	if err != nil {
		t.Fatal(err)
	}

	detail, err := f.service.GetDetail(ctx, sub.SubmissionID)
	if err != nil {
		t.Fatal(err)
	}

	report, err := NewReportService(discardLogger()).ExportSubmission(ctx, detail)
	if err != nil {
		t.Fatalf("ExportSubmission() error = %v", err)
	}
	if report.ContentType != xlsxContentType || report.Filename == "" {
		t.Errorf("unexpected report metadata: %s %s", report.Filename, report.ContentType)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(report.Data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	want := []string{sheetSummary, sheetAnswers, sheetByTopic, sheetByDifficulty}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("sheet %d = %s, want %s", i, sheets[i], name)
		}
	}

	answers, err := wb.GetRows(sheetAnswers)
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 4 {
		t.Fatalf("Answers sheet has %d rows, want header + 3", len(answers))
	}
	if answers[2][2] != optionID(2, "b") || answers[2][4] != "FALSE" {
		t.Errorf("second answer row = %v", answers[2])
	}

	topics, err := wb.GetRows(sheetByTopic)
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 3 || topics[1][0] != "1" || topics[2][0] != "2" {
		t.Errorf("ByTopic rows = %v", topics)
	}

	score, err := wb.GetCellValue(sheetSummary, "B8")
	if err != nil {
		t.Fatal(err)
	}
	if score == "" {
		t.Error("score cell is empty")
	}
}

func TestReportService_ExportSubmission_NilDetail(t *testing.T) {
	if _, err := NewReportService(discardLogger()).ExportSubmission(context.Background(), nil); err == nil {
		t.Fatal("ExportSubmission(nil) expected an error")
	}
}
