package candidatehandler

import (
	"fmt"

	"recruit-flow-backend/db"
	resultstore "recruit-flow-backend/lib/assessment/result-store"
	candidatehistoryhandler "recruit-flow-backend/lib/candidate-history"
	candidatestore "recruit-flow-backend/lib/candidate/store"
	notificationhandler "recruit-flow-backend/lib/notification"
	"recruit-flow-backend/models"
	candidateapimodels "recruit-flow-backend/models/api/candidate"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(filter candidateapimodels.ListFilter) ([]candidateapimodels.CandidateView, int64, error)
	GetByID(id string) (candidateapimodels.CandidateView, error)
	ChangeStatus(id, userID string, request candidateapimodels.StatusChangeRequest) error
	ListResults(candidateID string) ([]candidateapimodels.ResultView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       candidatestore.NewInstance(db.DB),
		resultStore: resultstore.NewInstance(db.DB),
	}
}

type impl struct {
	store       candidatestore.Provider
	resultStore resultstore.Provider
}

func (i impl) List(filter candidateapimodels.ListFilter) ([]candidateapimodels.CandidateView, int64, error) {
	dbFilter := dbmodels.CandidateFilter{
		FormID: filter.FormID,
		Status: filter.Status,
		Search: filter.Search,
	}
	rowCount, err := i.store.ListCount(dbFilter)
	if err != nil {
		log.WithError(err).Error("failed to count candidates")
		return nil, 0, errors.New("failed to list candidates")
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []candidateapimodels.CandidateView{}, rowCount, nil
	}

	list, err := i.store.List(dbFilter, page, limit)
	if err != nil {
		log.WithError(err).Error("failed to list candidates")
		return nil, 0, errors.New("failed to list candidates")
	}
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.Convert(rec))
	}
	return result, rowCount, nil
}

func (i impl) GetByID(id string) (candidateapimodels.CandidateView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("candidate_id", id).WithError(err).Error("failed to get candidate")
		return candidateapimodels.CandidateView{}, errors.New("failed to get candidate")
	}
	if rec == nil {
		return candidateapimodels.CandidateView{}, errors.New("candidate not found")
	}
	return candidateapimodels.Convert(*rec), nil
}

func (i impl) ChangeStatus(id, userID string, request candidateapimodels.StatusChangeRequest) error {
	logger := log.WithField("candidate_id", id).WithField("status", request.Status)
	rec, err := i.store.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("failed to get candidate")
		return errors.New("failed to get candidate")
	}
	if rec == nil {
		return errors.New("candidate not found")
	}
	allowed, err := rec.IsAllowStatusChange(request.Status)
	if err != nil {
		return err
	}
	if !allowed {
		// same status, nothing to do
		return nil
	}
	if request.Status == models.CandidateStatusRejected && request.RejectReason == "" {
		return errors.New("reject reason is required")
	}

	updMap := map[string]interface{}{
		"Status": request.Status,
	}
	if request.Status == models.CandidateStatusRejected {
		updMap["RejectReason"] = request.RejectReason
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update candidate status")
		return errors.New("failed to update candidate status")
	}

	candidatehistoryhandler.Instance.Save(id, rec.FormID, userID, models.ActionTypeStatusChange,
		candidatehistoryhandler.GetStatusChange(rec.Status, request.Status, request.RejectReason))

	body := fmt.Sprintf("Hello %v, your application status is now: %v.", rec.GetFIO(), request.Status.ToHuman())
	if request.Status == models.CandidateStatusRejected {
		body = fmt.Sprintf("Hello %v, unfortunately we will not be moving forward with your application. Reason: %v.", rec.GetFIO(), request.RejectReason)
	}
	notificationhandler.Instance.EnqueueEmail(rec.Email, "Application status update", body)
	notificationhandler.Instance.EnqueuePush(rec.UserID, "Application status update", body)

	logger.Info("candidate status changed")
	return nil
}

func (i impl) ListResults(candidateID string) ([]candidateapimodels.ResultView, error) {
	list, err := i.resultStore.ListByCandidate(candidateID)
	if err != nil {
		log.WithField("candidate_id", candidateID).WithError(err).Error("failed to list candidate results")
		return nil, errors.New("failed to list candidate results")
	}
	result := make([]candidateapimodels.ResultView, 0, len(list))
	for _, rec := range list {
		view := candidateapimodels.ResultView{
			TestID:      rec.TestID,
			Score:       rec.Score,
			TotalScore:  rec.TotalScore,
			Percentage:  rec.Percentage,
			Passed:      rec.Passed,
			Status:      rec.Status,
			SubmittedAt: rec.SubmittedAt,
		}
		if rec.Test != nil {
			view.TestTitle = rec.Test.Title
		}
		result = append(result, view)
	}
	return result, nil
}
