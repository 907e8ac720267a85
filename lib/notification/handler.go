package notificationhandler

import (
	"recruit-flow-backend/db"
	notificationstore "recruit-flow-backend/lib/notification/store"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	EnqueueEmail(email, subject, body string)
	EnqueueSms(phone, body string)
	EnqueuePush(userID, subject, body string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: notificationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store notificationstore.Provider
}

// Enqueue* methods are best effort, callers never fail on a full outbox.

func (i impl) EnqueueEmail(email, subject, body string) {
	if email == "" {
		return
	}
	i.enqueue(dbmodels.Notification{
		Channel:   models.NotificationChannelEmail,
		Recipient: email,
		Subject:   subject,
		Body:      body,
	})
}

func (i impl) EnqueueSms(phone, body string) {
	if phone == "" {
		return
	}
	i.enqueue(dbmodels.Notification{
		Channel:   models.NotificationChannelSms,
		Recipient: phone,
		Body:      body,
	})
}

func (i impl) EnqueuePush(userID, subject, body string) {
	if userID == "" {
		return
	}
	i.enqueue(dbmodels.Notification{
		Channel:   models.NotificationChannelPush,
		Recipient: userID,
		Subject:   subject,
		Body:      body,
	})
}

func (i impl) enqueue(rec dbmodels.Notification) {
	_, err := i.store.Enqueue(rec)
	if err != nil {
		log.
			WithField("channel", rec.Channel).
			WithField("recipient", rec.Recipient).
			WithError(err).
			Error("failed to enqueue notification")
	}
}
