package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/notification"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/infrastructure/memory"
)

type fakeMailer struct {
	mu       sync.Mutex
	sent     []notification.Email
	err      error
	attempts int
}

func (m *fakeMailer) Send(_ context.Context, e notification.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

type fakeQueue struct{ jobs []notification.Email }

func (q *fakeQueue) EnqueueEmail(_ context.Context, e notification.Email) error {
	q.jobs = append(q.jobs, e)
	return nil
}

type fakeReports struct{ months []string }

func (r *fakeReports) MonthlyReport(_ context.Context, month string) (*dto.MonthlyReportDTO, error) {
	r.months = append(r.months, month)
	return &dto.MonthlyReportDTO{
		Period:     "Octubre 2026",
		Start:      "2026-10-01",
		End:        "2026-10-31",
		SalesCount: 3,
		SalesTotal: decimal.RequireFromString("123.40"),
		LowStock:   []dto.LowStockItem{{SupplyName: "Harina", OnHand: 1, MinStock: 5}},
	}, nil
}

type fakePDF struct{ err error }

func (p fakePDF) MonthlyReportPDF(context.Context, *dto.MonthlyReportDTO) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4"), nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestShouldSend(t *testing.T) {
	cfg := func(day int) *entity.EmailConfig {
		return &entity.EmailConfig{Recipient: "dueno@negocio.com", SendDay: day, Enabled: true}
	}
	tests := []struct {
		name  string
		cfg   *entity.EmailConfig
		today time.Time
		want  bool
	}{
		{"nil", nil, date(2026, 10, 1), false},
		{"deshabilitado", &entity.EmailConfig{Recipient: "a@b.co", SendDay: 1}, date(2026, 10, 1), false},
		{"sin destinatario", &entity.EmailConfig{SendDay: 1, Enabled: true}, date(2026, 10, 1), false},
		{"día exacto", cfg(15), date(2026, 10, 15), true},
		{"otro día", cfg(15), date(2026, 10, 16), false},
		{"30 en febrero se envía el 28", cfg(30), date(2026, 2, 28), true},
		{"31 en abril se envía el 30", cfg(31), date(2026, 4, 30), true},
		{"31 en abril no el 29", cfg(31), date(2026, 4, 29), false},
		{"30 en mes de 31 días no el 31", cfg(30), date(2026, 10, 31), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notification.ShouldSend(tt.cfg, tt.today))
		})
	}
}

func TestConfigurar_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := notification.NewEmailReportUseCase(store.EmailConfig(), &fakeReports{}, nil, &fakeMailer{}, nil)
	ctx := context.Background()

	cfg, err := uc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.SendDay)
	assert.False(t, cfg.Enabled)
	assert.Nil(t, cfg.LastUpdated)

	_, err = uc.Configure(ctx, "u1", dto.EmailConfigRequest{Recipient: "no-es-email", SendDay: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Configure(ctx, "u1", dto.EmailConfigRequest{Recipient: "a@b.co", SendDay: 32})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Configure(ctx, "u1", dto.EmailConfigRequest{Recipient: "a@b.co", SendDay: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	saved, err := uc.Configure(ctx, "u1", dto.EmailConfigRequest{Recipient: " a@b.co ", SendDay: 31, Enabled: true})
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", saved.Recipient)
	assert.NotNil(t, saved.LastUpdated)

	cfg, err = uc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 31, cfg.SendDay)
	assert.True(t, cfg.Enabled)
}

func TestEnviarPrueba_EnLinea(t *testing.T) {
	mailer := &fakeMailer{}
	reports := &fakeReports{}
	uc := notification.NewEmailReportUseCase(memory.NewStore().EmailConfig(), reports, fakePDF{}, mailer, nil)

	res, err := uc.SendTest(context.Background(), "dueno@negocio.com")
	require.NoError(t, err)
	assert.False(t, res.Queued)
	assert.Equal(t, "Email de prueba enviado exitosamente", res.Message)
	assert.Contains(t, res.Preview, "PRUEBA")
	assert.Contains(t, res.Preview, "$123.40")
	assert.Contains(t, res.Preview, "Harina")

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "Email de Prueba - Reporte Mensual", msg.Subject)
	assert.Equal(t, []string{"dueno@negocio.com"}, msg.To)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
	assert.Equal(t, []string{time.Now().Format("2006-01")}, reports.months)

	_, err = uc.SendTest(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEnviarPrueba_FalloDeEnvioNoEsError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp caído")}
	uc := notification.NewEmailReportUseCase(memory.NewStore().EmailConfig(), &fakeReports{}, fakePDF{err: errors.New("pdf")}, mailer, nil)

	res, err := uc.SendTest(context.Background(), "dueno@negocio.com")
	require.NoError(t, err)
	assert.False(t, res.Queued)
	assert.Contains(t, res.Message, "No se pudo enviar")
	assert.NotEmpty(t, res.Preview)
}

func TestEnviarPrueba_Encolado(t *testing.T) {
	mailer := &fakeMailer{}
	queue := &fakeQueue{}
	uc := notification.NewEmailReportUseCase(memory.NewStore().EmailConfig(), &fakeReports{}, nil, mailer, queue)

	res, err := uc.SendTest(context.Background(), "dueno@negocio.com")
	require.NoError(t, err)
	assert.True(t, res.Queued)
	assert.Empty(t, mailer.sent)
	require.Len(t, queue.jobs, 1)
	assert.NotEmpty(t, queue.jobs[0].ID)
	assert.Empty(t, queue.jobs[0].Attachments)
}

func TestEnviarMensual_SoloElDiaConfigurado(t *testing.T) {
	store := memory.NewStore()
	mailer := &fakeMailer{}
	reports := &fakeReports{}
	uc := notification.NewEmailReportUseCase(store.EmailConfig(), reports, nil, mailer, nil)
	ctx := context.Background()
	_, err := uc.Configure(ctx, "u1", dto.EmailConfigRequest{Recipient: "dueno@negocio.com", SendDay: 31, Enabled: true})
	require.NoError(t, err)

	res, err := uc.SendMonthly(ctx, date(2026, 4, 29))
	require.NoError(t, err)
	assert.False(t, res.Attempted)
	assert.False(t, res.Delivered)

	res, err = uc.SendMonthly(ctx, date(2026, 4, 30))
	require.NoError(t, err)
	assert.True(t, res.Attempted)
	assert.True(t, res.Delivered)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Reporte Mensual - Octubre 2026", mailer.sent[0].Subject)
	assert.NotContains(t, mailer.sent[0].HTML, "PRUEBA")
	assert.Equal(t, []string{"2026-04"}, reports.months)
}

func TestScheduler_UnaVezPorDia(t *testing.T) {
	store := memory.NewStore()
	mailer := &fakeMailer{}
	uc := notification.NewEmailReportUseCase(store.EmailConfig(), &fakeReports{}, nil, mailer, nil)
	ctx := context.Background()
	_, err := uc.Configure(ctx, "u1", dto.EmailConfigRequest{Recipient: "dueno@negocio.com", SendDay: 10, Enabled: true})
	require.NoError(t, err)

	s := notification.NewScheduler(uc)
	assert.False(t, s.Tick(ctx, date(2026, 10, 9)))
	assert.True(t, s.Tick(ctx, date(2026, 10, 10)))
	assert.False(t, s.Tick(ctx, date(2026, 10, 10).Add(time.Hour)))
	assert.Len(t, mailer.sent, 1)
	assert.True(t, s.Tick(ctx, date(2026, 11, 10)))
	assert.Len(t, mailer.sent, 2)
}

func TestEnviarMensual_FalloDeEnvioQuedaIntentado(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp caído")}
	uc := notification.NewEmailReportUseCase(memory.NewStore().EmailConfig(), &fakeReports{}, nil, mailer, nil)
	ctx := context.Background()
	_, err := uc.Configure(ctx, "u1", dto.EmailConfigRequest{Recipient: "dueno@negocio.com", SendDay: 10, Enabled: true})
	require.NoError(t, err)

	res, err := uc.SendMonthly(ctx, date(2026, 10, 10))
	require.NoError(t, err)
	assert.True(t, res.Attempted)
	assert.False(t, res.Delivered)
}

func TestScheduler_FalloDeEnvioSinReintentoEnElDia(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp caído")}
	uc := notification.NewEmailReportUseCase(memory.NewStore().EmailConfig(), &fakeReports{}, nil, mailer, nil)
	ctx := context.Background()
	_, err := uc.Configure(ctx, "u1", dto.EmailConfigRequest{Recipient: "dueno@negocio.com", SendDay: 10, Enabled: true})
	require.NoError(t, err)

	s := notification.NewScheduler(uc)
	start := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24; h++ {
		assert.False(t, s.Tick(ctx, start.Add(time.Duration(h)*time.Hour)))
	}
	assert.Equal(t, 1, mailer.attempts)
	assert.Empty(t, mailer.sent)

	// Al mes siguiente vuelve a intentar.
	s.Tick(ctx, date(2026, 11, 10))
	assert.Equal(t, 2, mailer.attempts)
}
