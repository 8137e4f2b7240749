package utils

import (
	"campus/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		return fmt.Errorf("email sender not configured")
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Campus Companion <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// AssignmentReminderEmail renders the reminder body for one assignment.
func AssignmentReminderEmail(studentName, courseCode, title, dueDate string) string {
	return fmt.Sprintf(`
	<html>
	<body style="font-family: Helvetica, Arial, sans-serif; color: #222;">
		<h2>Assignment due soon</h2>
		<p>Hi %s,</p>
		<p>Your assignment <strong>%s</strong> for course <strong>%s</strong> is due on <strong>%s</strong>.</p>
		<p>Good luck!</p>
	</body>
	</html>`, studentName, title, courseCode, dueDate)
}
