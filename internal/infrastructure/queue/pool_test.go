package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/notification"
)

type recordingMailer struct {
	sent []notification.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notification.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestEncodeJob_SobreConPayload(t *testing.T) {
	msg := notification.Email{
		ID:          "j1",
		To:          []string{"a@b.com"},
		Subject:     "Reporte",
		Attachments: []notification.Attachment{{Filename: "r.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
	}
	raw, err := encodeJob(jobTypeEmail, msg)
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal(raw, &job))
	assert.Equal(t, jobTypeEmail, job.Type)

	var got notification.Email
	require.NoError(t, json.Unmarshal(job.Payload, &got))
	assert.Equal(t, msg, got)
}

func TestProcessJob(t *testing.T) {
	ctx := context.Background()
	raw, err := encodeJob(jobTypeEmail, notification.Email{ID: "j1", To: []string{"a@b.com"}})
	require.NoError(t, err)

	t.Run("envía el email", func(t *testing.T) {
		m := &recordingMailer{}
		processJob(ctx, m, QueueEmail, raw)
		require.Len(t, m.sent, 1)
		assert.Equal(t, "j1", m.sent[0].ID)
	})

	t.Run("descarta json inválido", func(t *testing.T) {
		m := &recordingMailer{}
		processJob(ctx, m, QueueEmail, []byte("{"))
		assert.Empty(t, m.sent)
	})

	t.Run("descarta tipo desconocido", func(t *testing.T) {
		other, err := encodeJob("facturacion", map[string]string{"x": "y"})
		require.NoError(t, err)
		m := &recordingMailer{}
		processJob(ctx, m, QueueEmail, other)
		assert.Empty(t, m.sent)
	})

	t.Run("sin destinatario no envía", func(t *testing.T) {
		empty, err := encodeJob(jobTypeEmail, notification.Email{ID: "j2"})
		require.NoError(t, err)
		m := &recordingMailer{}
		processJob(ctx, m, QueueEmail, empty)
		assert.Empty(t, m.sent)
	})

	t.Run("fallo de envío no reintenta", func(t *testing.T) {
		m := &recordingMailer{err: errors.New("smtp caído")}
		processJob(ctx, m, QueueEmail, raw)
		assert.Empty(t, m.sent)
	})
}
