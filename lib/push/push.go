package pushclient

import (
	"encoding/json"

	"recruit-flow-backend/config"
	dbmodels "recruit-flow-backend/models/db"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendPush(sub dbmodels.PushSub, title, body string) error
}

func NewProvider() {
	Instance = &impl{}
}

type impl struct{}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (i impl) SendPush(sub dbmodels.PushSub, title, body string) error {
	if config.Conf.Push.VAPIDPrivateKey == "" {
		log.Warn("push is not sent, VAPID keys are not configured")
		return nil
	}
	if sub.Endpoint == "" {
		return errors.New("push subscription is empty")
	}
	payload, err := json.Marshal(pushPayload{Title: title, Body: body})
	if err != nil {
		return err
	}
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      config.Conf.Push.Subscriber,
		VAPIDPublicKey:  config.Conf.Push.VAPIDPublicKey,
		VAPIDPrivateKey: config.Conf.Push.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send push")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.Errorf("push endpoint responded with status %v", resp.StatusCode)
	}
	return nil
}
