// Package notification arma y entrega el reporte mensual por email.
package notification

import (
	"context"

	"github.com/jhoicas/negocio-api/internal/application/dto"
)

// Attachment adjunto del email.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Email mensaje listo para enviar. ID identifica el job en la cola.
type Email struct {
	ID          string       `json:"id"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Mailer envía un email por SMTP.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// Queue encola el email para que lo envíe el pool de workers.
type Queue interface {
	EnqueueEmail(ctx context.Context, msg Email) error
}

// ReportSource genera el contenido del reporte mensual (YYYY-MM).
type ReportSource interface {
	MonthlyReport(ctx context.Context, month string) (*dto.MonthlyReportDTO, error)
}

// PDFRenderer genera el PDF adjunto del reporte mensual.
type PDFRenderer interface {
	MonthlyReportPDF(ctx context.Context, report *dto.MonthlyReportDTO) ([]byte, error)
}
