package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func newTestMailer(dialer Dialer) *Mailer {
	cfg := &config.MailerConfig{From: "noreply@example.com", AdminEmail: "admin@example.com"}
	return NewMailerWithDialer(dialer, cfg, logger.NewNop())
}

func TestRender_UsesRequestedLocale(t *testing.T) {
	m := newTestMailer(&fakeDialer{})

	subject, body, err := m.Render(&domain.Mail{
		Template: domain.MailSubscriptionConfirmation,
		Locale:   "uk",
		Data:     map[string]string{"tenant": "Riviera", "confirm_url": "https://example.com/c?token=abc"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Підтвердіть підписку на Riviera", subject)
	assert.Contains(t, body, `href="https://example.com/c?token=abc"`)
}

func TestRender_FallsBackToBaseLanguageThenEnglish(t *testing.T) {
	m := newTestMailer(&fakeDialer{})
	data := map[string]string{"tenant": "Riviera", "email": "a@b.c"}

	subject, _, err := m.Render(&domain.Mail{Template: domain.MailSubscriberConfirmed, Locale: "ru-RU", Data: data})
	require.NoError(t, err)
	assert.Equal(t, "Новый подписчик Riviera", subject)

	subject, _, err = m.Render(&domain.Mail{Template: domain.MailSubscriberConfirmed, Locale: "de", Data: data})
	require.NoError(t, err)
	assert.Equal(t, "New subscriber for Riviera", subject)
}

func TestRender_EscapesData(t *testing.T) {
	m := newTestMailer(&fakeDialer{})

	_, body, err := m.Render(&domain.Mail{
		Template: domain.MailSubscriberConfirmed,
		Data:     map[string]string{"tenant": "Riviera", "email": "<script>x</script>"},
	})

	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	m := newTestMailer(&fakeDialer{})

	_, _, err := m.Render(&domain.Mail{Template: "nope"})

	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestSend_DefaultsToAdminMailbox(t *testing.T) {
	dialer := &fakeDialer{}
	m := newTestMailer(dialer)

	err := m.Send(context.Background(), &domain.Mail{
		Template: domain.MailScrapeReport,
		Data:     map[string]string{"tenant": "Riviera", "url": "https://src.example.com/1", "status": "completed"},
	})

	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"admin@example.com"}, dialer.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"noreply@example.com"}, dialer.sent[0].GetHeader("From"))
	assert.Equal(t, []string{"Import completed: https://src.example.com/1"}, dialer.sent[0].GetHeader("Subject"))
}

func TestSend_DialerError(t *testing.T) {
	m := newTestMailer(&fakeDialer{err: errors.New("connection refused")})

	err := m.Send(context.Background(), &domain.Mail{To: "a@b.c", Template: domain.MailSubscriberConfirmed})

	assert.ErrorContains(t, err, "connection refused")
}
