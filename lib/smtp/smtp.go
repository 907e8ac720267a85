package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(from, to, message, subject string) error
	SendHtmlEMail(from, to, message, subject string) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) SendEMail(from, to, message, subject string) error {
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	return i.send(from, to, message, subject, mimeHeaders)
}

func (i impl) SendHtmlEMail(from, to, message, subject string) error {
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n"
	return i.send(from, to, message, subject, mimeHeaders)
}

func (i impl) send(from, to, message, subject, mimeHeaders string) (err error) {
	logger := log.WithField("mail_to", to)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("email is not sent, smtp client is not configured")
		return nil
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(fmt.Sprintf("From: %s\nTo: %s\nSubject: %s\n%s\r\n%s\r\n", from, to, subject, mimeHeaders, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("failed to send email")
		return err
	}
	logger.Info("email sent")
	return nil
}
