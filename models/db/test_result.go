package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"recruit-flow-backend/models"
)

// TestResult is a candidate's graded outcome for one test. Exactly one row
// exists per (test, candidate) pair; a resubmission overwrites it.
type TestResult struct {
	BaseModel
	TestID      string     `gorm:"type:varchar(36);index;uniqueIndex:idx_result_test_candidate"`
	Test        *Test      `gorm:"foreignKey:TestID"`
	CandidateID string     `gorm:"type:varchar(36);index;uniqueIndex:idx_result_test_candidate"`
	Candidate   *Candidate `gorm:"foreignKey:CandidateID"`
	Score       float64
	TotalScore  float64
	Percentage  float64
	Passed      bool
	Status      models.TestResultStatus `gorm:"type:varchar(50);index"`
	Answers     ResultAnswers           `gorm:"type:jsonb"`
	SubmittedAt time.Time
}

func (j ResultAnswers) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ResultAnswers) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type ResultAnswers struct {
	Answers []ResultAnswer `json:"answers"`
}

type ResultAnswer struct {
	QuestionID string          `json:"question_id"`
	Answer     json.RawMessage `json:"answer"`
	// Correct is nil while the answer awaits manual grading
	// (subjective question types, or an unknown question id).
	Correct      *bool      `json:"correct"`
	MarksAwarded float64    `json:"marks_awarded"`
	TimeTakenSec int        `json:"time_taken_sec,omitempty"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
}
