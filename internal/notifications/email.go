package notifications

import (
	"gopkg.in/gomail.v2"
)

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	dialer := gomail.NewDialer(host, port, username, password)
	dialer.TLSConfig = nil
	return &SMTPSender{
		dialer: dialer,
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage(func(m *gomail.Message) {
		m.SetHeader("From", s.from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", htmlBody)
	})
	return s.dialer.DialAndSend(m)
}
