package utils

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// FromAddress builds the sender header from EMAIL_FROM_NAME and
// EMAIL_USER. With no display name configured the bare address is used.
func FromAddress() string {
	addr := os.Getenv("EMAIL_USER")
	if name := os.Getenv("EMAIL_FROM_NAME"); name != "" {
		return gomail.NewMessage().FormatAddress(addr, name)
	}
	return addr
}

// SendEmail sends an HTML mail through the clinic's SMTP account. .env is
// loaded once at startup; this reads the already-populated environment.
func SendEmail(to, subject, body string) error {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", FromAddress())
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}
