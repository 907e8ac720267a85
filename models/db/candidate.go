package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"recruit-flow-backend/models"

	"github.com/pkg/errors"
)

type Candidate struct {
	BaseModel
	UserID       string                 `gorm:"type:varchar(36);uniqueIndex"`
	User         *User                  `gorm:"foreignKey:UserID"`
	FormID       string                 `gorm:"type:varchar(36);index"`
	Form         *RecruitmentForm       `gorm:"foreignKey:FormID"`
	Status       models.CandidateStatus `gorm:"type:varchar(50);index"`
	RejectReason string                 `gorm:"type:varchar(255)"`
	FirstName    string                 `gorm:"type:varchar(255)"`
	LastName     string                 `gorm:"type:varchar(255)"`
	Phone        string                 `gorm:"type:varchar(50)"`
	Email        string                 `gorm:"type:varchar(255);index"`
	Profile      CandidateProfile       `gorm:"type:jsonb"` // submitted form values
}

func (c Candidate) GetFIO() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Pipeline transitions allowed from each stage.
var candidateStatusFlow = map[models.CandidateStatus][]models.CandidateStatus{
	models.CandidateStatusPending:     {models.CandidateStatusApproved, models.CandidateStatusShortlisted, models.CandidateStatusRejected, models.CandidateStatusOnHold},
	models.CandidateStatusApproved:    {models.CandidateStatusShortlisted, models.CandidateStatusSelected, models.CandidateStatusRejected, models.CandidateStatusOnHold},
	models.CandidateStatusShortlisted: {models.CandidateStatusShortlisted, models.CandidateStatusSelected, models.CandidateStatusRejected, models.CandidateStatusOnHold},
	models.CandidateStatusOnHold:      {models.CandidateStatusApproved, models.CandidateStatusShortlisted, models.CandidateStatusRejected},
}

func (c Candidate) IsAllowStatusChange(newStatus models.CandidateStatus) (bool, error) {
	if c.Status == newStatus {
		// reconfirming the current stage is a no-op, not an error
		return false, nil
	}
	allowed, ok := candidateStatusFlow[c.Status]
	if !ok {
		return false, errors.Errorf("status change unavailable, candidate already %s", c.Status)
	}
	for _, s := range allowed {
		if s == newStatus {
			return true, nil
		}
	}
	return false, errors.Errorf("status change %s -> %s is not allowed", c.Status, newStatus)
}

func (j CandidateProfile) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *CandidateProfile) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type CandidateProfile struct {
	Values map[string]string `json:"values"`
}

type CandidateFilter struct {
	FormID string                 `json:"form_id"`
	Status models.CandidateStatus `json:"status"`
	Search string                 `json:"search"`
}
