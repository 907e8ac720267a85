package candidateapimodels

import (
	"time"

	"recruit-flow-backend/models"
	apimodels "recruit-flow-backend/models/api"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
)

type CandidateView struct {
	ID           string                 `json:"id"`
	FormID       string                 `json:"form_id"`
	FormTitle    string                 `json:"form_title,omitempty"`
	FirstName    string                 `json:"first_name"`
	LastName     string                 `json:"last_name"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	Status       models.CandidateStatus `json:"status"`
	RejectReason string                 `json:"reject_reason,omitempty"`
	Profile      map[string]string      `json:"profile,omitempty"`
	AppliedAt    time.Time              `json:"applied_at"`
}

func Convert(rec dbmodels.Candidate) CandidateView {
	view := CandidateView{
		ID:           rec.ID,
		FormID:       rec.FormID,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Email:        rec.Email,
		Phone:        rec.Phone,
		Status:       rec.Status,
		RejectReason: rec.RejectReason,
		Profile:      rec.Profile.Values,
		AppliedAt:    rec.CreatedAt,
	}
	if rec.Form != nil {
		view.FormTitle = rec.Form.Title
	}
	return view
}

type ListFilter struct {
	apimodels.Pagination
	FormID string                 `json:"form_id"`
	Status models.CandidateStatus `json:"status"`
	Search string                 `json:"search"`
}

type StatusChangeRequest struct {
	Status       models.CandidateStatus `json:"status"`
	RejectReason string                 `json:"reject_reason,omitempty"`
}

func (r StatusChangeRequest) Validate() error {
	if r.Status == "" {
		return errors.New("status is not specified")
	}
	return nil
}

type HistoryFilter struct {
	apimodels.Pagination
	ActionType models.ActionType `json:"action_type,omitempty"`
}

type HistoryView struct {
	ID         string                    `json:"id"`
	ActionType models.ActionType         `json:"action_type"`
	UserName   string                    `json:"user_name"`
	Changes    dbmodels.CandidateChanges `json:"changes"`
	CreatedAt  time.Time                 `json:"created_at"`
}

func HistoryConvert(rec dbmodels.CandidateHistory) HistoryView {
	return HistoryView{
		ID:         rec.ID,
		ActionType: rec.ActionType,
		UserName:   rec.UserName,
		Changes:    rec.Changes,
		CreatedAt:  rec.CreatedAt,
	}
}

type NoteRequest struct {
	Note string `json:"note"`
}

func (r NoteRequest) Validate() error {
	if r.Note == "" {
		return errors.New("note text is not specified")
	}
	return nil
}

type ResultView struct {
	TestID      string                  `json:"test_id"`
	TestTitle   string                  `json:"test_title,omitempty"`
	Score       float64                 `json:"score"`
	TotalScore  float64                 `json:"total_score"`
	Percentage  float64                 `json:"percentage"`
	Passed      bool                    `json:"passed"`
	Status      models.TestResultStatus `json:"status"`
	SubmittedAt time.Time               `json:"submitted_at"`
}
