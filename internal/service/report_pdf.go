package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"testinsight-backend/internal/model"
)

// RenderReportPDF writes a printable version of a stored report.
func RenderReportPDF(report *model.AnalysisReport, w io.Writer) error {
	body := report.Body.Data()
	overall := body.OverallPerformance

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Test analysis report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Test Analysis Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Report %s  |  Attempt %d  |  Test %d", report.ReportID, report.AttemptID, report.TestID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Grade %s  |  Score %.1f%%  |  Percentile %d", overall.Grade, overall.ScorePercent, overall.Percentile))
	pdf.Ln(10)

	heading(pdf, "Topic analysis")
	pdf.SetFont("Arial", "B", 10)
	widths := []float64{55, 30, 20, 22, 22, 41}
	for i, h := range []string{"Topic", "Subject", "Attempted", "Accuracy", "Avg time", "Performance"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, t := range body.TopicAnalysis {
		row := []string{
			tr(t.Topic),
			tr(t.Subject),
			fmt.Sprintf("%d", t.QuestionsAttempted),
			fmt.Sprintf("%.1f%%", t.Accuracy),
			fmt.Sprintf("%.0fs", t.AverageTime),
			t.Performance,
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	heading(pdf, "Recommendations")
	for _, r := range body.Recommendations {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("[%s] %s", r.Priority, r.Title)), "", "L", false)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(r.Description), "", "L", false)
		bullets(pdf, tr, r.ActionItems)
		pdf.Ln(2)
	}

	heading(pdf, "Study plan")
	for _, section := range []struct {
		title string
		tasks []string
	}{
		{"Immediate", body.StudyPlan.Immediate},
		{"Short term", body.StudyPlan.ShortTerm},
		{"Long term", body.StudyPlan.LongTerm},
	} {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, section.title)
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		bullets(pdf, tr, section.tasks)
	}
	pdf.Ln(2)

	heading(pdf, "Concept insights")
	pdf.SetFont("Arial", "", 10)
	insights := body.ConceptualInsights
	pdf.MultiCell(0, 5, tr("Mastered: "+joinOrNone(insights.MasteredConcepts)), "", "L", false)
	pdf.MultiCell(0, 5, tr("Needs work: "+joinOrNone(insights.StrugglingConcepts)), "", "L", false)
	bullets(pdf, tr, insights.ConceptConnections)
	pdf.Ln(2)

	heading(pdf, "Time management")
	tm := body.TimeManagement
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("Average %.0fs per question, efficiency %.0f%%, pacing %s",
		tm.AverageTimePerQuestion, tm.Efficiency, tm.Pacing), "", "L", false)
	bullets(pdf, tr, tm.Recommendations)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
}

func bullets(pdf *gofpdf.Fpdf, tr func(string) string, items []string) {
	for _, item := range items {
		pdf.MultiCell(0, 5, tr("- "+item), "", "L", false)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
