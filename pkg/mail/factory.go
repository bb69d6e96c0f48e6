package mail

import (
	"fmt"

	"github.com/abisalde/inventory-service/internal/configs"
	"go.uber.org/zap"
)

func NewMailerService(cfg *configs.Config, log *zap.Logger) (Mailer, error) {
	switch cfg.Mail.Provider {
	case configs.MailProviderResend:
		log.Info("initializing Resend mail service", zap.String("env", cfg.App.Env))
		return NewResendMailService(cfg.Mail.EmailAPIKey, cfg.Mail.SenderEmail), nil
	case configs.MailProviderSMTP:
		log.Info("initializing SMTP mail service",
			zap.String("env", cfg.App.Env),
			zap.String("host", cfg.Mail.SMTPHost),
		)
		return NewSMTPMailService(
			cfg.Mail.SMTPHost,
			cfg.Mail.SMTPPort,
			cfg.Mail.SMTPUsername,
			cfg.Mail.SMTPPassword,
			cfg.Mail.SenderEmail,
		), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Mail.Provider)
	}
}
