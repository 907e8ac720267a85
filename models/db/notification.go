package dbmodels

import (
	"recruit-flow-backend/models"
)

// Notification is an outbox row. Request paths only enqueue; the dispatch
// worker owns delivery, so a provider outage never fails a status transition.
type Notification struct {
	BaseModel
	Channel   models.NotificationChannel `gorm:"type:varchar(20);index"`
	Recipient string                     `gorm:"type:varchar(255)"` // email address, phone or user id for push
	Subject   string                     `gorm:"type:varchar(255)"`
	Body      string                     `gorm:"type:text"`
	Status    models.NotificationStatus  `gorm:"type:varchar(20);index"`
	Attempts  int
	LastError string `gorm:"type:text"`
}
