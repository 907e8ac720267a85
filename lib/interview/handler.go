package interviewhandler

import (
	"fmt"

	"recruit-flow-backend/db"
	candidatehistoryhandler "recruit-flow-backend/lib/candidate-history"
	candidatestore "recruit-flow-backend/lib/candidate/store"
	interviewstore "recruit-flow-backend/lib/interview/store"
	notificationhandler "recruit-flow-backend/lib/notification"
	"recruit-flow-backend/models"
	interviewapimodels "recruit-flow-backend/models/api/interview"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Schedule(userID string, request interviewapimodels.ScheduleRequest) (interviewID string, err error)
	List(formID string) ([]interviewapimodels.InterviewView, error)
	GetByID(id string) (interviewapimodels.InterviewView, error)
	SetScore(interviewID, panelUserID string, request interviewapimodels.ScoreRequest) error
	SetCandidateStatus(interviewID, candidateID string, status models.InterviewCandidateStatus) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          interviewstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store          interviewstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) Schedule(userID string, request interviewapimodels.ScheduleRequest) (string, error) {
	logger := log.
		WithField("form_id", request.FormID).
		WithField("candidate_id", request.CandidateID)
	candidateRec, err := i.candidateStore.GetByID(request.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get candidate")
		return "", errors.New("failed to get candidate")
	}
	if candidateRec == nil {
		return "", errors.New("candidate not found")
	}
	round := request.Round
	if round <= 0 {
		round = 1
	}
	iType := request.Type
	if iType == "" {
		iType = models.InterviewTypeTechnical
	}
	rec, err := i.store.FindOrCreate(request.FormID, round, iType, request.Date)
	if err != nil {
		logger.WithError(err).Error("failed to schedule interview")
		return "", errors.New("failed to schedule interview")
	}
	_, err = i.store.UpsertCandidate(dbmodels.InterviewCandidate{
		InterviewID: rec.ID,
		CandidateID: request.CandidateID,
		Status:      models.InterviewCandidateScheduled,
		TimeSlot:    request.TimeSlot,
	})
	if err != nil {
		logger.WithError(err).Error("failed to add candidate to interview")
		return "", errors.New("failed to schedule interview")
	}

	date := rec.Date.Format("02.01.2006")
	body := fmt.Sprintf("Hello %v, your %v interview is scheduled for %v %v.",
		candidateRec.GetFIO(), iType, date, request.TimeSlot)
	notificationhandler.Instance.EnqueueEmail(candidateRec.Email, "Interview scheduled", body)
	notificationhandler.Instance.EnqueuePush(candidateRec.UserID, "Interview scheduled", body)

	candidatehistoryhandler.Instance.Save(candidateRec.ID, candidateRec.FormID, userID,
		models.ActionTypeInterviewSet,
		candidatehistoryhandler.GetInterviewScheduled(iType, date, request.TimeSlot))
	logger.WithField("interview_id", rec.ID).Info("interview scheduled")
	return rec.ID, nil
}

func (i impl) List(formID string) ([]interviewapimodels.InterviewView, error) {
	list, err := i.store.List(formID)
	if err != nil {
		log.WithField("form_id", formID).WithError(err).Error("failed to list interviews")
		return nil, errors.New("failed to list interviews")
	}
	result := make([]interviewapimodels.InterviewView, 0, len(list))
	for _, rec := range list {
		scheduled, err := i.store.ListCandidates(rec.ID)
		if err != nil {
			log.WithField("interview_id", rec.ID).WithError(err).Error("failed to list interview candidates")
			return nil, errors.New("failed to list interviews")
		}
		result = append(result, interviewapimodels.Convert(rec, scheduled))
	}
	return result, nil
}

func (i impl) GetByID(id string) (interviewapimodels.InterviewView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("interview_id", id).WithError(err).Error("failed to get interview")
		return interviewapimodels.InterviewView{}, errors.New("failed to get interview")
	}
	if rec == nil {
		return interviewapimodels.InterviewView{}, errors.New("interview not found")
	}
	scheduled, err := i.store.ListCandidates(id)
	if err != nil {
		log.WithField("interview_id", id).WithError(err).Error("failed to list interview candidates")
		return interviewapimodels.InterviewView{}, errors.New("failed to get interview")
	}
	return interviewapimodels.Convert(*rec, scheduled), nil
}

// SetScore records one panel member's score, a re-score overwrites their
// previous one.
func (i impl) SetScore(interviewID, panelUserID string, request interviewapimodels.ScoreRequest) error {
	logger := log.
		WithField("interview_id", interviewID).
		WithField("candidate_id", request.CandidateID)
	rec, err := i.store.GetCandidate(interviewID, request.CandidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get interview candidate")
		return errors.New("failed to save the score")
	}
	if rec == nil {
		return errors.New("candidate is not scheduled for this interview")
	}
	scores := rec.Scores.Scores
	found := false
	for k := range scores {
		if scores[k].PanelUserID == panelUserID {
			scores[k].Score = request.Score
			scores[k].Comment = request.Comment
			found = true
			break
		}
	}
	if !found {
		scores = append(scores, dbmodels.PanelScore{
			PanelUserID: panelUserID,
			Score:       request.Score,
			Comment:     request.Comment,
		})
	}
	err = i.store.UpdateCandidate(rec.ID, map[string]interface{}{
		"Scores": dbmodels.PanelScores{Scores: scores},
		"Status": models.InterviewCandidateDone,
	})
	if err != nil {
		logger.WithError(err).Error("failed to save the score")
		return errors.New("failed to save the score")
	}
	logger.WithField("score", request.Score).Info("panel score saved")
	return nil
}

func (i impl) SetCandidateStatus(interviewID, candidateID string, status models.InterviewCandidateStatus) error {
	logger := log.
		WithField("interview_id", interviewID).
		WithField("candidate_id", candidateID)
	rec, err := i.store.GetCandidate(interviewID, candidateID)
	if err != nil {
		logger.WithError(err).Error("failed to get interview candidate")
		return errors.New("failed to update interview status")
	}
	if rec == nil {
		return errors.New("candidate is not scheduled for this interview")
	}
	err = i.store.UpdateCandidate(rec.ID, map[string]interface{}{
		"Status": status,
	})
	if err != nil {
		logger.WithError(err).Error("failed to update interview status")
		return errors.New("failed to update interview status")
	}
	return nil
}
