// Package mail envía emails por SMTP con jordan-wright/email.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/jhoicas/negocio-api/internal/application/notification"
	"github.com/jhoicas/negocio-api/pkg/config"
)

var _ notification.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía el HTML del reporte con sus adjuntos.
type SMTPMailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		addr:     cfg.Addr(),
	}
}

// Send arma el mensaje y lo entrega. Sin usuario SMTP configurado devuelve error.
func (m *SMTPMailer) Send(_ context.Context, msg notification.Email) error {
	if m.user == "" {
		return fmt.Errorf("mailer: SMTP_USER no configurado")
	}
	e := buildMessage(m.from, msg)
	for _, a := range msg.Attachments {
		if _, err := e.Attach(bytes.NewReader(a.Data), a.Filename, a.ContentType); err != nil {
			return fmt.Errorf("mailer: adjuntar %s: %w", a.Filename, err)
		}
	}
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: enviar a %v: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg notification.Email) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = msg.To
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)
	return e
}
