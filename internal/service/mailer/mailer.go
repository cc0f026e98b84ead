// Package mailer renders templated mails and delivers them over SMTP.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/pkg/logger"
)

const fallbackLocale = "en"

var ErrUnknownTemplate = errors.New("unknown mail template")

// Dialer delivers composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type compiled struct {
	subject *texttemplate.Template
	body    *htmltemplate.Template
}

type Mailer struct {
	dialer     Dialer
	from       string
	adminEmail string
	templates  map[string]map[string]compiled
	logger     *logger.Logger
}

func NewMailer(cfg *config.MailerConfig, log *logger.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.GmailEmail, cfg.Password)
	return NewMailerWithDialer(dialer, cfg, log)
}

// NewMailerWithDialer panics if a built-in template does not parse.
func NewMailerWithDialer(dialer Dialer, cfg *config.MailerConfig, log *logger.Logger) *Mailer {
	m := &Mailer{
		dialer:     dialer,
		from:       cfg.From,
		adminEmail: cfg.AdminEmail,
		templates:  make(map[string]map[string]compiled),
		logger:     log,
	}
	for name, locales := range sources {
		m.templates[name] = make(map[string]compiled)
		for locale, src := range locales {
			m.templates[name][locale] = compiled{
				subject: texttemplate.Must(texttemplate.New(name + ".subject").Option("missingkey=zero").Parse(src.subject)),
				body:    htmltemplate.Must(htmltemplate.New(name + ".body").Option("missingkey=zero").Parse(src.body)),
			}
		}
	}
	return m
}

// Render returns the subject and HTML body of mail in the closest available locale.
func (m *Mailer) Render(mail *domain.Mail) (string, string, error) {
	locales, ok := m.templates[mail.Template]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, mail.Template)
	}
	tmpl := pickLocale(locales, mail.Locale)

	data := mail.Data
	if data == nil {
		data = map[string]string{}
	}

	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	if err := tmpl.body.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render body: %w", err)
	}
	return strings.TrimSpace(subject.String()), body.String(), nil
}

// Send delivers mail. Mails without a recipient go to the admin mailbox.
func (m *Mailer) Send(ctx context.Context, mail *domain.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to := mail.To
	if to == "" {
		to = m.adminEmail
	}
	if to == "" {
		return errors.New("mail has no recipient and no admin mailbox is configured")
	}

	subject, body, err := m.Render(mail)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	m.logger.Info("Mail sent", zap.String("template", mail.Template), zap.String("to", to))
	return nil
}

// pickLocale tries the exact locale, then its base language, then English.
func pickLocale(locales map[string]compiled, locale string) compiled {
	locale = strings.ToLower(locale)
	if t, ok := locales[locale]; ok {
		return t
	}
	if tag, err := language.Parse(locale); err == nil {
		base, _ := tag.Base()
		if t, ok := locales[base.String()]; ok {
			return t
		}
	}
	if t, ok := locales[fallbackLocale]; ok {
		return t
	}
	for _, t := range locales {
		return t
	}
	return compiled{}
}
