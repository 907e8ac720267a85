package analytics

import (
	"bytes"

	"recruit-flow-backend/db"
	resultstore "recruit-flow-backend/lib/assessment/result-store"
	assessmentstore "recruit-flow-backend/lib/assessment/store"
	candidatestore "recruit-flow-backend/lib/candidate/store"
	pdfexport "recruit-flow-backend/lib/export/pdf"
	xlsexport "recruit-flow-backend/lib/export/xls"
	"recruit-flow-backend/models"
	dashboardapimodels "recruit-flow-backend/models/api/dashboard"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Dashboard(formID string) (dashboardapimodels.DashboardView, error)
	CandidatesExportToXls(filter dbmodels.CandidateFilter) (*bytes.Buffer, error)
	ResultsExportToXls(testID string) (*bytes.Buffer, error)
	CandidateReportToPdf(testID, candidateID string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		candidateStore:  candidatestore.NewInstance(db.DB),
		assessmentStore: assessmentstore.NewInstance(db.DB),
		resultStore:     resultstore.NewInstance(db.DB),
	}
}

type impl struct {
	candidateStore  candidatestore.Provider
	assessmentStore assessmentstore.Provider
	resultStore     resultstore.Provider
}

func (i impl) Dashboard(formID string) (dashboardapimodels.DashboardView, error) {
	byStatus, err := i.candidateStore.CountByStatus(formID)
	if err != nil {
		log.WithField("form_id", formID).WithError(err).Error("failed to count candidates by status")
		return dashboardapimodels.DashboardView{}, errors.New("failed to build the dashboard")
	}
	view := dashboardapimodels.DashboardView{
		Pipeline: dashboardapimodels.PipelineStats{
			ByStatus: byStatus,
		},
		Tests: []dashboardapimodels.TestStats{},
	}
	for _, count := range byStatus {
		view.Pipeline.Total += count
	}

	tests, err := i.assessmentStore.List(formID)
	if err != nil {
		log.WithField("form_id", formID).WithError(err).Error("failed to list tests")
		return dashboardapimodels.DashboardView{}, errors.New("failed to build the dashboard")
	}
	for _, testRec := range tests {
		assignments, err := i.assessmentStore.ListAssignments(testRec.ID)
		if err != nil {
			log.WithField("test_id", testRec.ID).WithError(err).Error("failed to list assignments")
			return dashboardapimodels.DashboardView{}, errors.New("failed to build the dashboard")
		}
		stats := dashboardapimodels.TestStats{
			TestID:  testRec.ID,
			Title:   testRec.Title,
			Invited: int64(len(assignments)),
		}
		sum := 0.0
		for _, a := range assignments {
			if a.Status != models.AssignmentStatusCompleted {
				continue
			}
			stats.Completed++
			sum += a.Percentage
			if a.Percentage >= testRec.PassingPercentage {
				stats.Passed++
			}
		}
		if stats.Completed > 0 {
			stats.AvgPercent = sum / float64(stats.Completed)
		}
		view.Tests = append(view.Tests, stats)
	}
	return view, nil
}

func (i impl) CandidatesExportToXls(filter dbmodels.CandidateFilter) (*bytes.Buffer, error) {
	rowCount, err := i.candidateStore.ListCount(filter)
	if err != nil {
		log.WithError(err).Error("failed to count candidates for export")
		return nil, errors.New("failed to export candidates")
	}
	list, err := i.candidateStore.List(filter, 1, int(rowCount))
	if err != nil {
		log.WithError(err).Error("failed to list candidates for export")
		return nil, errors.New("failed to export candidates")
	}
	return xlsexport.Instance.ExportCandidateList(list)
}

func (i impl) ResultsExportToXls(testID string) (*bytes.Buffer, error) {
	testRec, err := i.assessmentStore.GetByID(testID)
	if err != nil {
		log.WithField("test_id", testID).WithError(err).Error("failed to get test for export")
		return nil, errors.New("failed to export results")
	}
	if testRec == nil {
		return nil, errors.New("test not found")
	}
	list, err := i.resultStore.ListByTest(testID)
	if err != nil {
		log.WithField("test_id", testID).WithError(err).Error("failed to list results for export")
		return nil, errors.New("failed to export results")
	}
	return xlsexport.Instance.ExportTestResults(*testRec, list)
}

func (i impl) CandidateReportToPdf(testID, candidateID string) ([]byte, error) {
	logger := log.WithField("test_id", testID).WithField("candidate_id", candidateID)
	testRec, err := i.assessmentStore.GetByID(testID)
	if err != nil {
		logger.WithError(err).Error("failed to get test for report")
		return nil, errors.New("failed to build the report")
	}
	if testRec == nil {
		return nil, errors.New("test not found")
	}
	candidateRec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get candidate for report")
		return nil, errors.New("failed to build the report")
	}
	if candidateRec == nil {
		return nil, errors.New("candidate not found")
	}
	resultRec, err := i.resultStore.GetByTestAndCandidate(testID, candidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get result for report")
		return nil, errors.New("failed to build the report")
	}
	if resultRec == nil {
		return nil, errors.New("the candidate has no result for this test")
	}
	return pdfexport.GenerateTestReport(*testRec, *candidateRec, *resultRec)
}
