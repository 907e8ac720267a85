package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
)

type RecruitmentForm struct {
	BaseModel
	Title       string     `gorm:"type:varchar(255)"`
	Description string     `gorm:"type:text"`
	LinkToken   string     `gorm:"type:varchar(64);uniqueIndex"` // public apply link
	IsOpen      bool       `gorm:"index"`
	Fields      FormFields `gorm:"type:jsonb"`
}

func (j FormFields) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *FormFields) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type FormFields struct {
	Fields []FormField `json:"fields"`
}

type FormField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"` // text, email, phone, select, file
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}
