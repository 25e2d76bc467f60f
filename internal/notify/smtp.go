package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// smtpSender delivers mail over SMTP. gomail enables implicit TLS on its own
// when the port is 465, matching the usual Gmail setup.
type smtpSender struct {
	host string
	port int
	user string
	pass string
}

// NewSMTPSender returns a Sender that dials the SMTP server on every send.
// One connection per order is plenty at this scale.
func NewSMTPSender(host string, port int, user, pass string) Sender {
	return &smtpSender{host: host, port: port, user: user, pass: pass}
}

func (s *smtpSender) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("notify: smtp send to %q: %w", to, err)
	}
	return nil
}
