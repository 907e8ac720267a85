package smsclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recruit-flow-backend/config"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendSms(phone, text string) error
}

func NewProvider() {
	Instance = &impl{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type impl struct {
	client *http.Client
}

type sendRequest struct {
	Sender string `json:"sender"`
	Phone  string `json:"phone"`
	Text   string `json:"text"`
}

func (i impl) SendSms(phone, text string) error {
	logger := log.WithField("phone", phone)
	gatewayUrl := config.Conf.Sms.GatewayUrl
	if gatewayUrl == "" {
		logger.Warn("sms is not sent, gateway is not configured")
		return nil
	}
	body, err := json.Marshal(sendRequest{
		Sender: config.Conf.Sms.Sender,
		Phone:  phone,
		Text:   text,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, gatewayUrl, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.Conf.Sms.ApiKey)
	resp, err := i.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "sms gateway request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.New(fmt.Sprintf("sms gateway responded with status %v", resp.StatusCode))
	}
	logger.Info("sms sent")
	return nil
}
