package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var validate = validator.New()

// EmailReportUseCase configuración y envío del reporte mensual.
// Con cola configurada el envío se encola; sin cola se envía en línea.
// Los fallos de envío se registran y no se reintentan.
type EmailReportUseCase struct {
	configRepo repository.EmailConfigRepository
	reports    ReportSource
	pdf        PDFRenderer
	mailer     Mailer
	queue      Queue
	now        func() time.Time
}

// NewEmailReportUseCase construye el caso de uso. queue y pdf pueden ser nil.
func NewEmailReportUseCase(
	configRepo repository.EmailConfigRepository,
	reports ReportSource,
	pdf PDFRenderer,
	mailer Mailer,
	queue Queue,
) *EmailReportUseCase {
	return &EmailReportUseCase{
		configRepo: configRepo,
		reports:    reports,
		pdf:        pdf,
		mailer:     mailer,
		queue:      queue,
		now:        time.Now,
	}
}

// GetConfig configuración actual o valores por defecto (sin destinatario, día 1, deshabilitado).
func (uc *EmailReportUseCase) GetConfig(ctx context.Context) (*dto.EmailConfigResponse, error) {
	cfg, err := uc.config(ctx)
	if err != nil {
		return nil, err
	}
	return toEmailConfigResponse(cfg), nil
}

// Configure guarda destinatario, día de envío (1..31) y estado.
func (uc *EmailReportUseCase) Configure(ctx context.Context, userID string, in dto.EmailConfigRequest) (*dto.EmailConfigResponse, error) {
	recipient := strings.TrimSpace(in.Recipient)
	if err := validate.Var(recipient, "required,email"); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.SendDay < 1 || in.SendDay > 31 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	cfg := &entity.EmailConfig{
		Recipient: recipient,
		SendDay:   in.SendDay,
		Enabled:   in.Enabled,
		UpdatedBy: userID,
		UpdatedAt: &now,
	}
	if err := uc.configRepo.Save(ctx, cfg); err != nil {
		return nil, domain.Storage("guardar configuración de email", err)
	}
	return toEmailConfigResponse(cfg), nil
}

// SendTest genera el reporte del mes en curso con la marca PRUEBA, lo entrega y devuelve la vista previa.
func (uc *EmailReportUseCase) SendTest(ctx context.Context, recipient string) (*dto.TestEmailResponse, error) {
	recipient = strings.TrimSpace(recipient)
	if err := validate.Var(recipient, "required,email"); err != nil {
		return nil, domain.ErrInvalidInput
	}
	msg, err := uc.build(ctx, recipient, uc.now(), true)
	if err != nil {
		return nil, err
	}
	queued, sent := uc.deliver(ctx, msg)
	res := &dto.TestEmailResponse{
		Message:   "Email de prueba enviado exitosamente",
		Recipient: recipient,
		Queued:    queued,
		Preview:   msg.HTML,
	}
	switch {
	case queued:
		res.Message = "Email de prueba encolado"
	case !sent:
		res.Message = "No se pudo enviar el email de prueba; revise la configuración SMTP"
	}
	return res, nil
}

// MonthlySend resultado de una revisión mensual.
// Attempted indica que hoy correspondía enviar y se intentó la entrega, con o sin éxito.
type MonthlySend struct {
	Attempted bool
	Delivered bool
	Queued    bool
}

// SendMonthly envía el reporte del mes en curso si hoy corresponde según la configuración.
// Un fallo de entrega se registra y no se reintenta: el resultado queda Attempted sin Delivered.
func (uc *EmailReportUseCase) SendMonthly(ctx context.Context, now time.Time) (MonthlySend, error) {
	cfg, err := uc.config(ctx)
	if err != nil {
		return MonthlySend{}, err
	}
	if !ShouldSend(cfg, now) {
		return MonthlySend{}, nil
	}
	msg, err := uc.build(ctx, cfg.Recipient, now, false)
	if err != nil {
		return MonthlySend{}, err
	}
	queued, sent := uc.deliver(ctx, msg)
	res := MonthlySend{Attempted: true, Delivered: sent || queued, Queued: queued}
	if res.Delivered {
		log.Info().Str("recipient", cfg.Recipient).Bool("queued", queued).Msg("reporte mensual entregado")
	}
	return res, nil
}

func (uc *EmailReportUseCase) build(ctx context.Context, recipient string, now time.Time, test bool) (Email, error) {
	month := now.Format("2006-01")
	report, err := uc.reports.MonthlyReport(ctx, month)
	if err != nil {
		return Email{}, err
	}
	html, err := RenderHTML(report, test)
	if err != nil {
		return Email{}, fmt.Errorf("renderizar reporte: %w", err)
	}
	subject := "Reporte Mensual - " + report.Period
	if test {
		subject = "Email de Prueba - Reporte Mensual"
	}
	msg := Email{
		ID:      uuid.New().String(),
		To:      []string{recipient},
		Subject: subject,
		HTML:    html,
	}
	if uc.pdf != nil {
		data, err := uc.pdf.MonthlyReportPDF(ctx, report)
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo generar el PDF del reporte mensual; se envía sin adjunto")
		} else {
			msg.Attachments = append(msg.Attachments, Attachment{
				Filename:    "reporte-" + month + ".pdf",
				ContentType: "application/pdf",
				Data:        data,
			})
		}
	}
	return msg, nil
}

// deliver encola o envía en línea; los errores se registran y se descartan.
func (uc *EmailReportUseCase) deliver(ctx context.Context, msg Email) (queued, sent bool) {
	if uc.queue != nil {
		if err := uc.queue.EnqueueEmail(ctx, msg); err != nil {
			log.Error().Err(err).Str("job_id", msg.ID).Msg("no se pudo encolar el email")
			return false, false
		}
		return true, false
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Strs("to", msg.To).Msg("no se pudo enviar el email")
		return false, false
	}
	return false, true
}

func (uc *EmailReportUseCase) config(ctx context.Context) (*entity.EmailConfig, error) {
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		return nil, domain.Storage("leer configuración de email", err)
	}
	if cfg == nil {
		cfg = entity.DefaultEmailConfig()
	}
	return cfg, nil
}

func toEmailConfigResponse(cfg *entity.EmailConfig) *dto.EmailConfigResponse {
	return &dto.EmailConfigResponse{
		Recipient:   cfg.Recipient,
		SendDay:     cfg.SendDay,
		Enabled:     cfg.Enabled,
		LastUpdated: cfg.UpdatedAt,
	}
}
