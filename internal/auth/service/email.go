package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"
)

const verificationSubject = "Verify Your Email Address"

//go:embed templates/verification_email_template.html
var emailTemplate embed.FS

var verificationTemplate = template.Must(
	template.ParseFS(emailTemplate, "templates/verification_email_template.html"),
)

func renderVerificationEmail(code string, ttl time.Duration) (string, error) {
	data := struct {
		Code    string
		Minutes int
	}{
		Code:    code,
		Minutes: int(ttl.Minutes()),
	}

	var htmlBody bytes.Buffer
	if err := verificationTemplate.Execute(&htmlBody, data); err != nil {
		return "", fmt.Errorf("render verification email: %w", err)
	}
	return htmlBody.String(), nil
}

// sendVerificationCode waits for the mailer and reports its outcome.
func (s *AuthService) sendVerificationCode(ctx context.Context, email, code string) error {
	body, err := renderVerificationEmail(code, s.codeTTL)
	if err != nil {
		return err
	}
	return s.mailer.SendHTMLEmail(ctx, email, verificationSubject, body)
}
