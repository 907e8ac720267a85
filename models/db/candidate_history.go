package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"recruit-flow-backend/models"
)

type CandidateHistory struct {
	BaseModel
	CandidateID string `gorm:"type:varchar(36);index"`
	FormID      string
	Form        *RecruitmentForm `gorm:"foreignKey:FormID"`
	UserID      *string
	UserName    string
	ActionType  models.ActionType `gorm:"type:varchar(255)"`
	Changes     CandidateChanges  `gorm:"type:jsonb"`
}

func (j CandidateChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *CandidateChanges) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type CandidateChanges struct {
	Description string            `json:"description"`
	Data        []CandidateChange `json:"data"`
}

type CandidateChange struct {
	Field    string      `json:"field"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}
