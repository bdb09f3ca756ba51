// internal/notify/composer_test.go
package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ponto-intake/internal/adjustments"
	commonerrors "ponto-intake/internal/common/errors"
	"ponto-intake/internal/common/logger"
	"ponto-intake/internal/mail"
)

// fakeTransport captures the last sent message.
type fakeTransport struct {
	sent []mail.Message
	err  error
}

func (f *fakeTransport) Send(ctx context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func createTestRecords() []adjustments.Record {
	return []adjustments.Record{
		{
			RegisteredAt:     "15/08/2026 11:30:00",
			Branch:           "SP01",
			ManagerEmail:     "ana@example.com",
			ManagerName:      "Ana Souza",
			CollaboratorName: "Bruno Lima",
			AdjustmentDate:   "2026-08-10",
			AdjustedTime:     "08:00",
			Reason:           "Esqueci de bater o ponto",
		},
		{
			RegisteredAt:     "15/08/2026 11:30:00",
			Branch:           "SP01",
			ManagerEmail:     "ana@example.com",
			ManagerName:      "Ana Souza",
			CollaboratorName: "Bruno Lima",
			AdjustmentDate:   "2026-08-11",
			AdjustedTime:     "17:30",
			Reason:           "Consulta médica\nretorno agendado",
		},
	}
}

func TestNotify_SendsToHRAndManager(t *testing.T) {
	transport := &fakeTransport{}
	composer := NewComposer(transport, "rh@example.com", "noreply@example.com", logger.NewTestLogger(t))

	err := composer.Notify(context.Background(), createTestRecords(), "ana@example.com", "Ana Souza")

	assert.NoError(t, err)
	assert.Len(t, transport.sent, 1)

	msg := transport.sent[0]
	assert.Equal(t, "noreply@example.com", msg.From)
	assert.Equal(t, []string{"rh@example.com", "ana@example.com"}, msg.To)
	assert.Equal(t, "AJUSTE DE PONTO - SP01 - 2 REGISTRO(S)", msg.Subject)
}

func TestNotify_BodyContents(t *testing.T) {
	transport := &fakeTransport{}
	composer := NewComposer(transport, "rh@example.com", "noreply@example.com", logger.NewTestLogger(t))

	err := composer.Notify(context.Background(), createTestRecords(), "ana@example.com", "Ana Souza")
	assert.NoError(t, err)

	body := transport.sent[0].HTML
	assert.Contains(t, body, "Bruno Lima")
	assert.Contains(t, body, "10/08/2026")
	assert.Contains(t, body, "11/08/2026")
	assert.Contains(t, body, "Consulta médica<br>retorno agendado")
	assert.Contains(t, body, "15/08/2026 11:30:00")
}

func TestNotify_GroupsByCollaborator(t *testing.T) {
	records := createTestRecords()
	records[1].CollaboratorName = "Carla Dias"

	transport := &fakeTransport{}
	composer := NewComposer(transport, "rh@example.com", "noreply@example.com", logger.NewTestLogger(t))

	err := composer.Notify(context.Background(), records, "ana@example.com", "Ana Souza")
	assert.NoError(t, err)

	body := transport.sent[0].HTML
	assert.Contains(t, body, "Bruno Lima")
	assert.Contains(t, body, "Carla Dias")
}

func TestNotify_EscapesReasonHTML(t *testing.T) {
	records := createTestRecords()[:1]
	records[0].Reason = "<script>alert(1)</script>"

	transport := &fakeTransport{}
	composer := NewComposer(transport, "rh@example.com", "noreply@example.com", logger.NewTestLogger(t))

	err := composer.Notify(context.Background(), records, "ana@example.com", "Ana Souza")
	assert.NoError(t, err)

	body := transport.sent[0].HTML
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestNotify_TransportFailure(t *testing.T) {
	transport := &fakeTransport{err: errors.New("550 relay denied")}
	composer := NewComposer(transport, "rh@example.com", "noreply@example.com", logger.NewTestLogger(t))

	err := composer.Notify(context.Background(), createTestRecords(), "ana@example.com", "Ana Souza")

	assert.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeNotificationSendFailed, commonerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "550 relay denied")
}

func TestNotify_MissingHRAddress(t *testing.T) {
	transport := &fakeTransport{}
	composer := NewComposer(transport, "", "noreply@example.com", logger.NewTestLogger(t))

	err := composer.Notify(context.Background(), createTestRecords(), "ana@example.com", "Ana Souza")

	assert.Equal(t, commonerrors.ErrCodeConfigurationMissing, commonerrors.CodeOf(err))
	assert.Empty(t, transport.sent)
}

func TestNotify_NoRecordsIsNoOp(t *testing.T) {
	transport := &fakeTransport{}
	composer := NewComposer(transport, "rh@example.com", "noreply@example.com", logger.NewTestLogger(t))

	err := composer.Notify(context.Background(), nil, "ana@example.com", "Ana Souza")

	assert.NoError(t, err)
	assert.Empty(t, transport.sent)
}
