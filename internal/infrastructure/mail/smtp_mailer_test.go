package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/notification"
	"github.com/jhoicas/negocio-api/pkg/config"
)

func TestBuildMessage(t *testing.T) {
	e := buildMessage("Reportes <reportes@negocio.com>", notification.Email{
		To:      []string{"dueno@negocio.com"},
		Subject: "Reporte Mensual - Octubre 2026",
		HTML:    "<h1>Hola</h1>",
	})
	raw, err := e.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Reporte Mensual - Octubre 2026")
	assert.Equal(t, []string{"dueno@negocio.com"}, e.To)
}

func TestSend_SinUsuarioSMTP(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 587})
	err := m.Send(context.Background(), notification.Email{To: []string{"a@b.com"}})
	assert.Error(t, err)
}
