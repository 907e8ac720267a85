package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"recruit-flow-backend/models"
)

type Test struct {
	BaseModel
	FormID            string           `gorm:"type:varchar(36);index"`
	Form              *RecruitmentForm `gorm:"foreignKey:FormID"`
	Title             string           `gorm:"type:varchar(255)"`
	Description       string           `gorm:"type:text"`
	DurationMin       int              // countdown shown to the candidate
	PassingPercentage float64
	CutoffPercentage  *float64      // advancement threshold; falls back to PassingPercentage when nil
	Round             int           `gorm:"default:1"`
	TotalMarks        float64       // derived, recomputed whenever questions change
	Questions         TestQuestions `gorm:"type:jsonb"`
}

// EffectiveCutoff is the advancement threshold used by the progression gate.
func (t Test) EffectiveCutoff() float64 {
	if t.CutoffPercentage != nil {
		return *t.CutoffPercentage
	}
	return t.PassingPercentage
}

func (t Test) FindQuestion(questionID string) *TestQuestion {
	for i := range t.Questions.Questions {
		if t.Questions.Questions[i].ID == questionID {
			return &t.Questions.Questions[i]
		}
	}
	return nil
}

func (j TestQuestions) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *TestQuestions) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type TestQuestions struct {
	Questions []TestQuestion `json:"questions"`
}

// TotalMarks sums the marks of every question.
func (j TestQuestions) TotalMarks() float64 {
	total := 0.0
	for _, q := range j.Questions {
		total += q.GetMarks()
	}
	return total
}

type TestQuestion struct {
	ID      string              `json:"id"`
	Text    string              `json:"text"`
	Type    models.QuestionType `json:"type"`
	Options []string            `json:"options,omitempty"`
	// CorrectAnswer is deliberately polymorphic: option index, array of
	// indices, option text, or array of option texts.
	CorrectAnswer json.RawMessage `json:"correct_answer,omitempty"`
	Marks         float64         `json:"marks"`
}

func (q TestQuestion) GetMarks() float64 {
	if q.Marks <= 0 {
		return 1
	}
	return q.Marks
}

type TestAssignment struct {
	BaseModel
	TestID      string                  `gorm:"type:varchar(36);index;uniqueIndex:idx_test_candidate"`
	Test        *Test                   `gorm:"foreignKey:TestID"`
	CandidateID string                  `gorm:"type:varchar(36);index;uniqueIndex:idx_test_candidate"`
	Candidate   *Candidate              `gorm:"foreignKey:CandidateID"`
	LinkToken   string                  `gorm:"type:varchar(64);uniqueIndex"` // take-test link
	Status      models.AssignmentStatus `gorm:"type:varchar(50);index"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	Score       float64
	Percentage  float64
}

// Deadline reports when the assignment runs out, once started.
func (a TestAssignment) Deadline(duration time.Duration, grace time.Duration) *time.Time {
	if a.StartedAt == nil {
		return nil
	}
	d := a.StartedAt.Add(duration + grace)
	return &d
}
