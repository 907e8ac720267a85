package notificationdispatchworker

import (
	"context"
	"time"

	"recruit-flow-backend/config"
	"recruit-flow-backend/db"
	notificationstore "recruit-flow-backend/lib/notification/store"
	pushclient "recruit-flow-backend/lib/push"
	smsclient "recruit-flow-backend/lib/sms"
	"recruit-flow-backend/lib/smtp"
	userstore "recruit-flow-backend/lib/user/store"
	baseworker "recruit-flow-backend/lib/utils/base-worker"
	"recruit-flow-backend/lib/utils/helpers"
	"recruit-flow-backend/models"
	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
)

const (
	batchSize   = 50
	maxAttempts = 5
)

// StartWorker drains the notification outbox. A delivery failure bumps the
// attempt counter and the row is retried on the next run until maxAttempts.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:  *baseworker.NewInstance("NotificationDispatchWorker", 10*time.Second, 30*time.Second),
		store:     notificationstore.NewInstance(db.DB),
		userStore: userstore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	store     notificationstore.Provider
	userStore userstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.ListQueued(batchSize, maxAttempts)
	if err != nil {
		logger.WithError(err).Error("failed to list queued notifications")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		rLogger := logger.
			WithField("notification_id", rec.ID).
			WithField("channel", rec.Channel).
			WithField("recipient", rec.Recipient)
		err = i.send(rec)
		if err != nil {
			rLogger.WithError(err).Error("failed to send notification")
			if rec.Attempts+1 >= maxAttempts {
				if mErr := i.store.MarkFailedFinal(rec.ID, err); mErr != nil {
					rLogger.WithError(mErr).Error("failed to mark notification as failed")
				}
			} else {
				if mErr := i.store.MarkFailed(rec.ID, err); mErr != nil {
					rLogger.WithError(mErr).Error("failed to bump notification attempts")
				}
			}
			continue
		}
		if mErr := i.store.MarkSent(rec.ID); mErr != nil {
			rLogger.WithError(mErr).Error("failed to mark notification as sent")
		}
	}
}

func (i impl) send(rec dbmodels.Notification) error {
	switch rec.Channel {
	case models.NotificationChannelEmail:
		return smtp.Instance.SendEMail(config.Conf.Smtp.FromEmail, rec.Recipient, rec.Body, rec.Subject)
	case models.NotificationChannelSms:
		return smsclient.Instance.SendSms(rec.Recipient, rec.Body)
	case models.NotificationChannelPush:
		// for push the recipient is the user id holding the subscription
		user, err := i.userStore.GetByID(rec.Recipient)
		if err != nil {
			return err
		}
		if user == nil || user.PushSub == nil {
			return errors.New("user has no push subscription")
		}
		return pushclient.Instance.SendPush(*user.PushSub, rec.Subject, rec.Body)
	}
	return errors.Errorf("unknown notification channel %q", rec.Channel)
}
