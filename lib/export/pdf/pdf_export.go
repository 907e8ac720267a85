package pdfexport

import (
	"bytes"
	"fmt"

	dbmodels "recruit-flow-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateTestReport renders a candidate's graded test outcome as a PDF.
func GenerateTestReport(test dbmodels.Test, candidate dbmodels.Candidate, result dbmodels.TestResult) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateTestReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.CellFormat(0, 10, "Test report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	writeLine(pdf, "Test", test.Title)
	writeLine(pdf, "Candidate", candidate.GetFIO())
	writeLine(pdf, "Email", candidate.Email)
	if !result.SubmittedAt.IsZero() {
		writeLine(pdf, "Submitted", result.SubmittedAt.Format("02.01.2006 15:04"))
	}
	writeLine(pdf, "Score", fmt.Sprintf("%.2f of %.2f (%.2f%%)", result.Score, result.TotalScore, result.Percentage))
	verdict := "failed"
	if result.Passed {
		verdict = "passed"
	}
	if result.Status == "pending" {
		verdict = "awaiting manual review"
	}
	writeLine(pdf, "Verdict", verdict)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Answers", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for idx, answer := range result.Answers.Answers {
		question := test.FindQuestion(answer.QuestionID)
		text := answer.QuestionID
		if question != nil {
			text = question.Text
		}
		mark := "pending"
		if answer.Correct != nil {
			if *answer.Correct {
				mark = fmt.Sprintf("correct, %.2f", answer.MarksAwarded)
			} else {
				mark = "incorrect"
			}
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("%v. %v", idx+1, text), "", "L", false)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 6, fmt.Sprintf("   %v", mark), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(1)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLine(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(40, 8, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}
