package mail

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/reelworthy/reelworthy-core/internal/config"
)

// Mailer sends account emails over SMTP. Sends are best effort: callers
// use the Dispatch variants, which run on a goroutine and only log
// failures. A mailer without SMTP credentials drops messages with a log
// line, which keeps local development working.
type Mailer struct {
	from      string
	fromName  string
	clientURL string
	enabled   bool

	send func(*gomail.Message) error
}

func NewMailer(cfg config.Config) *Mailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &Mailer{
		from:      cfg.MailFrom,
		fromName:  cfg.MailFromName,
		clientURL: cfg.ClientURL,
		enabled:   cfg.SMTPUser != "",
		send:      func(msg *gomail.Message) error { return dialer.DialAndSend(msg) },
	}
}

func (m *Mailer) compose(to, subject, htmlBody string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return msg
}

func (m *Mailer) deliver(kind, to string, msg *gomail.Message) error {
	if !m.enabled {
		log.Printf("mail disabled, dropping %s email to %s", kind, to)
		return nil
	}
	if err := m.send(msg); err != nil {
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	log.Printf("%s email sent to %s", kind, to)
	return nil
}

func (m *Mailer) welcomeBody(firstName, verificationToken string) string {
	verifyURL := fmt.Sprintf("%s/verify-email/%s", m.clientURL, verificationToken)
	return fmt.Sprintf(welcomeTemplate, firstName, verifyURL, verifyURL)
}

func (m *Mailer) resetBody(firstName, resetToken string) string {
	resetURL := fmt.Sprintf("%s/reset-password/%s", m.clientURL, resetToken)
	return fmt.Sprintf(resetTemplate, firstName, resetURL, resetURL)
}

func (m *Mailer) SendWelcome(to, firstName, verificationToken string) error {
	body := m.welcomeBody(firstName, verificationToken)
	return m.deliver("welcome", to, m.compose(to, "Welcome to Reelworthy - Please Verify Your Email", body))
}

func (m *Mailer) SendVerificationSuccess(to, firstName string) error {
	body := fmt.Sprintf(verifiedTemplate, firstName)
	return m.deliver("verification success", to, m.compose(to, "Email Verified - Reelworthy", body))
}

func (m *Mailer) SendPasswordReset(to, firstName, resetToken string) error {
	body := m.resetBody(firstName, resetToken)
	return m.deliver("password reset", to, m.compose(to, "Password Reset Request - Reelworthy", body))
}

// dispatch runs a send in the background. Failures are logged and never
// reach the caller; account flows must not fail because SMTP did.
func dispatch(fn func() error) {
	go func() {
		if err := fn(); err != nil {
			log.Printf("mail dispatch failed: %v", err)
		}
	}()
}

func (m *Mailer) DispatchWelcome(to, firstName, verificationToken string) {
	dispatch(func() error { return m.SendWelcome(to, firstName, verificationToken) })
}

func (m *Mailer) DispatchVerificationSuccess(to, firstName string) {
	dispatch(func() error { return m.SendVerificationSuccess(to, firstName) })
}

func (m *Mailer) DispatchPasswordReset(to, firstName, resetToken string) {
	dispatch(func() error { return m.SendPasswordReset(to, firstName, resetToken) })
}
