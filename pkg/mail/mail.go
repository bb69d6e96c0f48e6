package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type Mailer interface {
	SendPlainTextEmail(ctx context.Context, recipientEmail, subject, body string) error
	SendHTMLEmail(ctx context.Context, recipientEmail, subject, htmlBody string) error
}

type SMTPMailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	senderEmail  string
	send         func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailService(host, port, username, password, from string) *SMTPMailService {
	return &SMTPMailService{
		smtpHost:     host,
		smtpPort:     port,
		smtpUsername: username,
		smtpPassword: password,
		senderEmail:  from,
		send:         smtp.SendMail,
	}
}

func (s *SMTPMailService) SendPlainTextEmail(ctx context.Context, recipientEmail, subject, body string) error {
	msg := buildMessage(s.senderEmail, recipientEmail, subject, "text/plain", body)
	if err := await(ctx, func() error { return s.deliver(recipientEmail, msg) }); err != nil {
		return fmt.Errorf("failed to send plain text email: %w", err)
	}
	return nil
}

func (s *SMTPMailService) SendHTMLEmail(ctx context.Context, recipientEmail, subject, htmlBody string) error {
	msg := buildMessage(s.senderEmail, recipientEmail, subject, "text/html", htmlBody)
	if err := await(ctx, func() error { return s.deliver(recipientEmail, msg) }); err != nil {
		return fmt.Errorf("failed to send HTML email: %w", err)
	}
	return nil
}

func (s *SMTPMailService) deliver(recipientEmail string, msg []byte) error {
	var auth smtp.Auth
	if s.smtpUsername != "" {
		auth = smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	}
	return s.send(fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort), auth, s.senderEmail, []string{recipientEmail}, msg)
}

func buildMessage(from, to, subject, contentType, body string) []byte {
	msg := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: %s; charset=\"utf-8\"", contentType),
		"",
		body,
	}
	return []byte(strings.Join(msg, "\r\n"))
}

// await runs send on its own goroutine and waits for its result or for ctx
// to finish, whichever comes first.
func await(ctx context.Context, send func() error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- send()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return fmt.Errorf("email sending canceled: %w", ctx.Err())
	}
}
