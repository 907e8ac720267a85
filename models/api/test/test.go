package testapimodels

import (
	"encoding/json"
	"time"

	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
)

type TestData struct {
	FormID            string         `json:"form_id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	DurationMin       int            `json:"duration_min"`
	PassingPercentage float64        `json:"passing_percentage"`
	CutoffPercentage  *float64       `json:"cutoff_percentage,omitempty"`
	Round             int            `json:"round"`
	Questions         []QuestionData `json:"questions"`
}

func (r TestData) Validate() error {
	if r.FormID == "" {
		return errors.New("recruitment form is not specified")
	}
	if r.Title == "" {
		return errors.New("test title is not specified")
	}
	if r.PassingPercentage < 0 || r.PassingPercentage > 100 {
		return errors.New("passing percentage must be within 0-100")
	}
	if r.CutoffPercentage != nil && (*r.CutoffPercentage < 0 || *r.CutoffPercentage > 100) {
		return errors.New("cutoff percentage must be within 0-100")
	}
	for _, q := range r.Questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type QuestionData struct {
	ID            string              `json:"id,omitempty"`
	Text          string              `json:"text"`
	Type          models.QuestionType `json:"type"`
	Options       []string            `json:"options,omitempty"`
	CorrectAnswer json.RawMessage     `json:"correct_answer,omitempty"`
	Marks         float64             `json:"marks"`
}

func (q QuestionData) Validate() error {
	if q.Text == "" {
		return errors.New("question text is not specified")
	}
	switch q.Type {
	case models.QuestionTypeMCQ, models.QuestionTypeMultipleAnswer:
		if len(q.Options) < 2 {
			return errors.New("choice question needs at least two options")
		}
	case models.QuestionTypeShortAnswer, models.QuestionTypeLongAnswer, models.QuestionTypeCoding:
	default:
		return errors.Errorf("unknown question type %q", q.Type)
	}
	return nil
}

// TestView is the administrator's view, correct answers included.
type TestView struct {
	ID                string         `json:"id"`
	FormID            string         `json:"form_id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	DurationMin       int            `json:"duration_min"`
	PassingPercentage float64        `json:"passing_percentage"`
	CutoffPercentage  *float64       `json:"cutoff_percentage,omitempty"`
	Round             int            `json:"round"`
	TotalMarks        float64        `json:"total_marks"`
	Questions         []QuestionData `json:"questions"`
	CreatedAt         time.Time      `json:"created_at"`
}

func TestConvert(rec dbmodels.Test) TestView {
	view := TestView{
		ID:                rec.ID,
		FormID:            rec.FormID,
		Title:             rec.Title,
		Description:       rec.Description,
		DurationMin:       rec.DurationMin,
		PassingPercentage: rec.PassingPercentage,
		CutoffPercentage:  rec.CutoffPercentage,
		Round:             rec.Round,
		TotalMarks:        rec.TotalMarks,
		Questions:         make([]QuestionData, 0, len(rec.Questions.Questions)),
		CreatedAt:         rec.CreatedAt,
	}
	for _, q := range rec.Questions.Questions {
		view.Questions = append(view.Questions, QuestionData{
			ID:            q.ID,
			Text:          q.Text,
			Type:          q.Type,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Marks:         q.GetMarks(),
		})
	}
	return view
}

// TakeTestView is what an invited candidate receives.
// Correct answers are never present here.
type TakeTestView struct {
	TestID      string             `json:"test_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	DurationMin int                `json:"duration_min"`
	TotalMarks  float64            `json:"total_marks"`
	StartedAt   *time.Time         `json:"started_at,omitempty"`
	Questions   []TakeQuestionView `json:"questions"`
}

type TakeQuestionView struct {
	ID      string              `json:"id"`
	Text    string              `json:"text"`
	Type    models.QuestionType `json:"type"`
	Options []string            `json:"options,omitempty"`
	Marks   float64             `json:"marks"`
}

func TakeTestConvert(rec dbmodels.Test, assignment dbmodels.TestAssignment) TakeTestView {
	view := TakeTestView{
		TestID:      rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		DurationMin: rec.DurationMin,
		TotalMarks:  rec.TotalMarks,
		StartedAt:   assignment.StartedAt,
		Questions:   make([]TakeQuestionView, 0, len(rec.Questions.Questions)),
	}
	for _, q := range rec.Questions.Questions {
		view.Questions = append(view.Questions, TakeQuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Options: q.Options,
			Marks:   q.GetMarks(),
		})
	}
	return view
}

type AnswerSubmission struct {
	QuestionID   string          `json:"question_id"`
	Answer       json.RawMessage `json:"answer"`
	TimeTakenSec int             `json:"time_taken,omitempty"`
	AnsweredAt   *time.Time      `json:"answered_at,omitempty"`
}

type SubmitRequest struct {
	Answers   []AnswerSubmission `json:"answers"`
	StartedAt *time.Time         `json:"started_at,omitempty"`
}

func (r SubmitRequest) Validate() error {
	for _, a := range r.Answers {
		if a.QuestionID == "" {
			return errors.New("answer without question id")
		}
	}
	return nil
}

type SubmitResult struct {
	Score      float64                 `json:"score"`
	TotalScore float64                 `json:"total_score"`
	Percentage float64                 `json:"percentage"`
	Passed     bool                    `json:"passed"`
	Status     models.TestResultStatus `json:"status"`
}

type AssignRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

func (r AssignRequest) Validate() error {
	if len(r.CandidateIDs) == 0 {
		return errors.New("no candidates specified")
	}
	return nil
}

type AssignmentView struct {
	CandidateID   string                  `json:"candidate_id"`
	CandidateName string                  `json:"candidate_name"`
	Email         string                  `json:"email"`
	Status        models.AssignmentStatus `json:"status"`
	Score         float64                 `json:"score"`
	Percentage    float64                 `json:"percentage"`
	StartedAt     *time.Time              `json:"started_at,omitempty"`
	CompletedAt   *time.Time              `json:"completed_at,omitempty"`
	Suggested     bool                    `json:"suggested"` // cleared the advancement cutoff
}

func AssignmentConvert(rec dbmodels.TestAssignment, cutoff float64) AssignmentView {
	view := AssignmentView{
		CandidateID: rec.CandidateID,
		Status:      rec.Status,
		Score:       rec.Score,
		Percentage:  rec.Percentage,
		StartedAt:   rec.StartedAt,
		CompletedAt: rec.CompletedAt,
		Suggested:   rec.Status == models.AssignmentStatusCompleted && rec.Percentage >= cutoff,
	}
	if rec.Candidate != nil {
		view.CandidateName = rec.Candidate.GetFIO()
		view.Email = rec.Candidate.Email
	}
	return view
}

type SuggestResult struct {
	Suggested int `json:"suggested"` // candidates moved to shortlisted
}

type ReleaseRequest struct {
	CandidateID   string               `json:"candidate_id"`
	Promote       bool                 `json:"promote"`
	InterviewDate *time.Time           `json:"interview_date,omitempty"`
	InterviewTime string               `json:"interview_time,omitempty"`
	InterviewType models.InterviewType `json:"interview_type,omitempty"`
	RejectReason  string               `json:"reject_reason,omitempty"`
}

func (r ReleaseRequest) Validate() error {
	if r.CandidateID == "" {
		return errors.New("candidate is not specified")
	}
	return nil
}
