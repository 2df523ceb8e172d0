package notification

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// ShouldSend indica si hoy corresponde enviar el reporte.
// Si el día configurado no existe en el mes (31 en abril, 30 en febrero) se envía el último día.
func ShouldSend(cfg *entity.EmailConfig, today time.Time) bool {
	if cfg == nil || !cfg.Enabled || cfg.Recipient == "" {
		return false
	}
	day := today.Day()
	if day == cfg.SendDay {
		return true
	}
	lastDay := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location()).Day()
	return cfg.SendDay > lastDay && day == lastDay
}

// Scheduler revisa cada intervalo si toca enviar el reporte mensual; envía como máximo una vez por día.
type Scheduler struct {
	uc       *EmailReportUseCase
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastSent string
}

// NewScheduler construye el programador con intervalo de una hora.
func NewScheduler(uc *EmailReportUseCase) *Scheduler {
	return &Scheduler{uc: uc, interval: time.Hour, now: time.Now}
}

// Run bloquea hasta que ctx se cancela.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	log.Info().Dur("interval", s.interval).Msg("programador de reporte mensual iniciado")
	s.Tick(ctx, s.now())
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("programador de reporte mensual detenido")
			return
		case <-ticker.C:
			s.Tick(ctx, s.now())
		}
	}
}

// Tick ejecuta una revisión; devuelve true si entregó el reporte en esta llamada.
// Tras un intento el día queda marcado aunque la entrega haya fallado.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) bool {
	today := now.Format(dto.DateLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSent == today {
		return false
	}
	res, err := s.uc.SendMonthly(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("reporte mensual")
		return false
	}
	if res.Attempted {
		s.lastSent = today
	}
	return res.Delivered
}
