package xlsexport

import (
	"bytes"
	"fmt"

	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportCandidateList(list []dbmodels.Candidate) (*bytes.Buffer, error)
	ExportTestResults(test dbmodels.Test, list []dbmodels.TestResult) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var candidateHeaders = []string{"Name", "Contacts", "Form", "Status", "Reject reason", "Applied"}

func (i impl) ExportCandidateList(list []dbmodels.Candidate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close the xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, candidateHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write the xlsx header")
	}
	if len(list) != 0 {
		row, err = writeCandidateData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write the xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Candidates")
	return f.WriteToBuffer()
}

func writeCandidateData(f *excelize.File, sheet string, list []dbmodels.Candidate, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(candidateHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Name"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.GetFIO()); err != nil {
			return row, err
		}

		// "Contacts"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%v\r%v", item.Phone, item.Email)); err != nil {
			return row, err
		}

		// "Form"
		col++
		if item.Form != nil {
			if err := writeColumn(f, sheet, col, row, item.Form.Title); err != nil {
				return row, err
			}
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Reject reason"
		col++
		if err := writeColumn(f, sheet, col, row, item.RejectReason); err != nil {
			return row, err
		}

		// "Applied"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}
	}
	return row, nil
}

var resultHeaders = []string{"Candidate", "Email", "Score", "Total", "Percentage", "Passed", "Status", "Submitted"}

func (i impl) ExportTestResults(test dbmodels.Test, list []dbmodels.TestResult) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close the xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, resultHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write the xlsx header")
	}
	if len(list) != 0 {
		row, err = writeResultData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write the xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Results")
	return f.WriteToBuffer()
}

func writeResultData(f *excelize.File, sheet string, list []dbmodels.TestResult, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(resultHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Candidate"
		col := 1
		if item.Candidate != nil {
			if err := writeColumn(f, sheet, col, row, item.Candidate.GetFIO()); err != nil {
				return row, err
			}
		}

		// "Email"
		col++
		if item.Candidate != nil {
			if err := writeColumn(f, sheet, col, row, item.Candidate.Email); err != nil {
				return row, err
			}
		}

		// "Score"
		col++
		if err := writeColumn(f, sheet, col, row, item.Score); err != nil {
			return row, err
		}

		// "Total"
		col++
		if err := writeColumn(f, sheet, col, row, item.TotalScore); err != nil {
			return row, err
		}

		// "Percentage"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f%%", item.Percentage)); err != nil {
			return row, err
		}

		// "Passed"
		col++
		passed := "no"
		if item.Passed {
			passed = "yes"
		}
		if err := writeColumn(f, sheet, col, row, passed); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Submitted"
		col++
		if !item.SubmittedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.SubmittedAt.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
