package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/negocio-api/internal/application/notification"
)

const (
	QueueEmail = "jobs:email"

	jobTypeEmail = "email"
	popTimeout   = 5 * time.Second
)

var _ notification.Queue = (*Dispatcher)(nil)

// Job sobre genérico de las tareas encoladas.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher encola trabajos con LPUSH; los workers los toman con BRPOP.
type Dispatcher struct {
	rdb redis.Cmdable
}

// NewDispatcher construye el dispatcher sobre un cliente ya conectado.
func NewDispatcher(rdb redis.Cmdable) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail encola el email completo (HTML y adjuntos).
func (d *Dispatcher) EnqueueEmail(ctx context.Context, msg notification.Email) error {
	encoded, err := encodeJob(jobTypeEmail, msg)
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, QueueEmail, encoded).Err(); err != nil {
		return fmt.Errorf("queue: encolar %s: %w", msg.ID, err)
	}
	return nil
}

func encodeJob(jobType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("queue: serializar payload: %w", err)
	}
	return json.Marshal(Job{Type: jobType, Payload: data})
}

// StartWorkerPool lanza n goroutines que consumen la cola de emails hasta que ctx se cancele.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, n int, mailer notification.Mailer) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		go runWorker(ctx, rdb, i, mailer)
	}
	log.Info().Int("workers", n).Msg("pool de workers iniciado")
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, mailer notification.Mailer) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker detenido")
			return
		default:
		}
		// BRPOP espera hasta popTimeout y vuelve a revisar ctx
		result, err := rdb.BRPop(ctx, popTimeout, QueueEmail).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Warn().Err(err).Int("worker", id).Msg("error leyendo la cola")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		processJob(ctx, mailer, result[0], []byte(result[1]))
	}
}

// processJob decodifica y envía. Los fallos se registran; no hay reintentos.
func processJob(ctx context.Context, mailer notification.Mailer, queue string, raw []byte) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("job ilegible")
		return
	}
	if job.Type != jobTypeEmail {
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("tipo de job desconocido")
		return
	}
	var msg notification.Email
	if err := json.Unmarshal(job.Payload, &msg); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("email_worker: payload inválido")
		return
	}
	if len(msg.To) == 0 {
		log.Warn().Str("job_id", msg.ID).Msg("email_worker: sin destinatario")
		return
	}
	if err := mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("job_id", msg.ID).Strs("to", msg.To).Msg("email_worker: fallo el envío")
		return
	}
	log.Info().Str("job_id", msg.ID).Strs("to", msg.To).Msg("email_worker: enviado")
}
