package services

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailService delivers tenant-facing mail. Implementations are expected to
// be safe for concurrent use; callers treat delivery as best-effort.
type EmailService interface {
	SendScheduleChangeDecision(to, tenantName string, approved bool, dueDay int, managerNote string) error
	SendDunningNotice(to, tenantName string, stage int, amountCents int64, dueDate time.Time, noticePDF []byte) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendScheduleChangeDecision(to, tenantName string, approved bool, dueDay int, managerNote string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)

	if tenantName == "" {
		tenantName = "Resident"
	}

	var body string
	if approved {
		m.SetHeader("Subject", "Your payment schedule change was approved")
		body = fmt.Sprintf(`
			<h3>Schedule change approved</h3>
			<p>Hi %s,</p>
			<p>Your requested change to the payment schedule has been approved.
			Rent is now due on day <strong>%d</strong> of each month.</p>
		`, tenantName, dueDay)
	} else {
		m.SetHeader("Subject", "Your payment schedule change was declined")
		body = fmt.Sprintf(`
			<h3>Schedule change declined</h3>
			<p>Hi %s,</p>
			<p>Your requested change to the payment schedule was not approved.</p>
		`, tenantName)
	}
	if managerNote != "" {
		body += fmt.Sprintf("<p>Note from your property manager: %s</p>", managerNote)
	}
	body += "<p>Best regards,<br>The RentFlow Team</p>"

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send schedule change email: %w", err)
	}
	return nil
}

var noticeSubjects = map[int]string{
	1: "Friendly reminder: rent payment past due",
	2: "Second notice: rent payment past due",
	3: "Third notice: rent payment past due",
	4: "Final notice: rent payment past due",
}

func (s *emailService) SendDunningNotice(to, tenantName string, stage int, amountCents int64, dueDate time.Time, noticePDF []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)

	subject, ok := noticeSubjects[stage]
	if !ok {
		subject = noticeSubjects[1]
	}
	m.SetHeader("Subject", subject)

	if tenantName == "" {
		tenantName = "Resident"
	}
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Our records show a rent payment of <strong>$%.2f</strong>
		due on %s has not been received.</p>
		<p>Please find the attached notice and arrange payment as soon as possible.
		If you have already paid, you can disregard this message.</p>
		<p>Best regards,<br>The RentFlow Team</p>
	`, tenantName, float64(amountCents)/100, dueDate.Format("January 2, 2006"))
	m.SetBody("text/html", body)

	if len(noticePDF) > 0 {
		m.Attach("notice.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(noticePDF)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send dunning notice email: %w", err)
	}
	return nil
}
