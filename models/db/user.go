package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"recruit-flow-backend/models"
)

type User struct {
	BaseModel
	Email        string          `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string          `gorm:"type:varchar(255)"`
	FirstName    string          `gorm:"type:varchar(255)"`
	LastName     string          `gorm:"type:varchar(255)"`
	Phone        string          `gorm:"type:varchar(50)"`
	Role         models.UserRole `gorm:"type:varchar(50);index"`
	PushSub      *PushSub        `gorm:"type:jsonb"`
}

func (u User) GetFIO() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PushSub is a Web Push subscription as handed over by the browser.
type PushSub struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

func (j PushSub) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *PushSub) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
