package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"vitalwatch/internal/config"
)

// SendEmail delivers a Task over SMTP to the configured recipient.
func SendEmail(_ context.Context, task Task, cfg config.Config) error {
	smtpServer := cfg.Email.SMTPServer
	smtpPort := cfg.Email.SMTPPort
	username := cfg.Email.Username
	password := cfg.Email.Password
	recipient := cfg.Email.Recipient

	if smtpServer == "" || smtpPort == 0 || username == "" || password == "" {
		return fmt.Errorf("missing Email configuration: SMTPServer, SMTPPort, Username, or Password is empty")
	}
	if recipient == "" {
		return fmt.Errorf("no email recipient configured")
	}

	var body strings.Builder
	body.WriteString(task.Body)
	if task.PatientName != "" {
		fmt.Fprintf(&body, "\nPatient: %s (%s)", task.PatientName, task.PatientID)
	}
	for _, e := range task.Entries {
		fmt.Fprintf(&body, "\n%s: %.2f (normal %.2f-%.2f)", e.Vital, e.Value, e.ThresholdMin, e.ThresholdMax)
	}
	message := fmt.Sprintf("Subject: %s\n\n%s", task.Subject, body.String())

	auth := smtp.PlainAuth("", username, password, smtpServer)
	addr := fmt.Sprintf("%s:%d", smtpServer, smtpPort)

	if err := smtp.SendMail(addr, auth, username, []string{recipient}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	return nil
}
