package notificationstore

import (
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Enqueue(rec dbmodels.Notification) (id string, err error)
	ListQueued(limit int, maxAttempts int) ([]dbmodels.Notification, error)
	MarkSent(id string) error
	MarkFailed(id string, sendErr error) error
	MarkFailedFinal(id string, sendErr error) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Enqueue(rec dbmodels.Notification) (id string, err error) {
	rec.Status = models.NotificationStatusQueued
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListQueued(limit int, maxAttempts int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Where("status = ?", models.NotificationStatusQueued).
		Where("attempts < ?", maxAttempts).
		Order("created_at").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkSent(id string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.NotificationStatusSent,
			"last_error": "",
			"attempts":   gorm.Expr("attempts + 1"),
		}).
		Error
}

// MarkFailed keeps the row queued until the attempt limit is reached;
// the dispatch worker decides when to stop retrying.
func (i impl) MarkFailed(id string, sendErr error) error {
	msg := ""
	if sendErr != nil {
		msg = sendErr.Error()
	}
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_error": msg,
			"attempts":   gorm.Expr("attempts + 1"),
		}).
		Error
}

// MarkFailedFinal gives up on the row for good.
func (i impl) MarkFailedFinal(id string, sendErr error) error {
	msg := ""
	if sendErr != nil {
		msg = sendErr.Error()
	}
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.NotificationStatusFailed,
			"last_error": msg,
			"attempts":   gorm.Expr("attempts + 1"),
		}).
		Error
}
