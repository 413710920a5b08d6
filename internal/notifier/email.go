package notifier

import (
	"gopkg.in/gomail.v2"
)

// EmailChannel sends alerts over SMTP. Configure it from env; with an
// empty host it is simply not registered.
type EmailChannel struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailChannel(host string, port int, username, password, from string) *EmailChannel {
	return &EmailChannel{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (e *EmailChannel) Send(recipient, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return e.dialer.DialAndSend(m)
}
