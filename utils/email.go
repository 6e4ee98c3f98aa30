package utils

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers outbound messages over SMTP. It implements
// scheduling.NotificationSender.
type EmailSender struct {
	host string
	port int
	user string
	pass string
}

func NewEmailSender() *EmailSender {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	return &EmailSender{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("EMAIL_USER"),
		pass: os.Getenv("EMAIL_PASS"),
	}
}

// Send dials SMTP and delivers one message, returning a generated message id.
func (s *EmailSender) Send(ctx context.Context, target, subject, body string) (string, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", target)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}
