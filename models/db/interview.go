package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"recruit-flow-backend/models"
)

// Interview groups the scheduled candidates of one (form, round, type) triple.
type Interview struct {
	BaseModel
	FormID string               `gorm:"type:varchar(36);index;uniqueIndex:idx_form_round_type"`
	Round  int                  `gorm:"uniqueIndex:idx_form_round_type"`
	Type   models.InterviewType `gorm:"type:varchar(50);uniqueIndex:idx_form_round_type"`
	Date   time.Time
}

type InterviewCandidate struct {
	BaseModel
	InterviewID string                          `gorm:"type:varchar(36);index;uniqueIndex:idx_interview_candidate"`
	Interview   *Interview                      `gorm:"foreignKey:InterviewID"`
	CandidateID string                          `gorm:"type:varchar(36);index;uniqueIndex:idx_interview_candidate"`
	Candidate   *Candidate                      `gorm:"foreignKey:CandidateID"`
	TimeSlot    string                          `gorm:"type:varchar(20)"`
	Status      models.InterviewCandidateStatus `gorm:"type:varchar(50);index"`
	Scores      PanelScores                     `gorm:"type:jsonb"`
}

func (j PanelScores) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *PanelScores) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type PanelScores struct {
	Scores []PanelScore `json:"scores"`
}

type PanelScore struct {
	PanelUserID string  `json:"panel_user_id"`
	Score       float64 `json:"score"`
	Comment     string  `json:"comment,omitempty"`
}

// Average of all panel scores, 0 when none are recorded yet.
func (j PanelScores) Average() float64 {
	if len(j.Scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range j.Scores {
		sum += s.Score
	}
	return sum / float64(len(j.Scores))
}
