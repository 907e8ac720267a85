package interviewapimodels

import (
	"time"

	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
)

type ScheduleRequest struct {
	FormID      string               `json:"form_id"`
	Round       int                  `json:"round"`
	Type        models.InterviewType `json:"type"`
	Date        time.Time            `json:"date"`
	CandidateID string               `json:"candidate_id"`
	TimeSlot    string               `json:"time_slot,omitempty"`
}

func (r ScheduleRequest) Validate() error {
	if r.FormID == "" {
		return errors.New("recruitment form is not specified")
	}
	if r.CandidateID == "" {
		return errors.New("candidate is not specified")
	}
	if r.Date.IsZero() {
		return errors.New("interview date is not specified")
	}
	return nil
}

type ScoreRequest struct {
	CandidateID string  `json:"candidate_id"`
	Score       float64 `json:"score"`
	Comment     string  `json:"comment,omitempty"`
}

func (r ScoreRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("candidate is not specified")
	}
	if r.Score < 0 || r.Score > 10 {
		return errors.New("score must be within 0-10")
	}
	return nil
}

type InterviewView struct {
	ID         string                   `json:"id"`
	FormID     string                   `json:"form_id"`
	Round      int                      `json:"round"`
	Type       models.InterviewType     `json:"type"`
	Date       time.Time                `json:"date"`
	Candidates []InterviewCandidateView `json:"candidates"`
}

type InterviewCandidateView struct {
	CandidateID   string                          `json:"candidate_id"`
	CandidateName string                          `json:"candidate_name,omitempty"`
	TimeSlot      string                          `json:"time_slot,omitempty"`
	Status        models.InterviewCandidateStatus `json:"status"`
	AverageScore  float64                         `json:"average_score"`
	Scores        []dbmodels.PanelScore           `json:"scores,omitempty"`
}

func Convert(rec dbmodels.Interview, scheduled []dbmodels.InterviewCandidate) InterviewView {
	view := InterviewView{
		ID:         rec.ID,
		FormID:     rec.FormID,
		Round:      rec.Round,
		Type:       rec.Type,
		Date:       rec.Date,
		Candidates: make([]InterviewCandidateView, 0, len(scheduled)),
	}
	for _, ic := range scheduled {
		cView := InterviewCandidateView{
			CandidateID:  ic.CandidateID,
			TimeSlot:     ic.TimeSlot,
			Status:       ic.Status,
			AverageScore: ic.Scores.Average(),
			Scores:       ic.Scores.Scores,
		}
		if ic.Candidate != nil {
			cView.CandidateName = ic.Candidate.GetFIO()
		}
		view.Candidates = append(view.Candidates, cView)
	}
	return view
}
