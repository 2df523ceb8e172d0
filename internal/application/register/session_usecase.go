package register

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// SessionUseCase cajas, apertura/cierre de sesiones y movimientos manuales de efectivo.
type SessionUseCase struct {
	txRunner     TxRunner
	registerRepo repository.RegisterRepository
	sessionRepo  repository.RegisterSessionRepository
	cashRepo     repository.RegisterMovementRepository
	now          func() time.Time
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	txRunner TxRunner,
	registerRepo repository.RegisterRepository,
	sessionRepo repository.RegisterSessionRepository,
	cashRepo repository.RegisterMovementRepository,
) *SessionUseCase {
	return &SessionUseCase{
		txRunner:     txRunner,
		registerRepo: registerRepo,
		sessionRepo:  sessionRepo,
		cashRepo:     cashRepo,
		now:          time.Now,
	}
}

// CreateRegister da de alta una caja.
func (uc *SessionUseCase) CreateRegister(ctx context.Context, in dto.CreateRegisterRequest) (*dto.RegisterResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	reg := &entity.Register{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Location:    in.Location,
		Lifecycle:   entity.LifecycleActive,
		CreatedAt:   uc.now(),
	}
	if err := uc.registerRepo.Create(ctx, reg); err != nil {
		return nil, domain.Storage("crear caja", err)
	}
	out := toRegisterResponse(reg)
	return &out, nil
}

// ListRegisters cajas activas.
func (uc *SessionUseCase) ListRegisters(ctx context.Context) ([]dto.RegisterResponse, error) {
	list, err := uc.registerRepo.List(ctx)
	if err != nil {
		return nil, domain.Storage("listar cajas", err)
	}
	out := make([]dto.RegisterResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRegisterResponse(r))
	}
	return out, nil
}

// GetRegister obtiene una caja.
func (uc *SessionUseCase) GetRegister(ctx context.Context, id string) (*dto.RegisterResponse, error) {
	reg, err := uc.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer caja", err)
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	out := toRegisterResponse(reg)
	return &out, nil
}

// OpenSession abre una sesión con la caja bloqueada; si ya hay una abierta devuelve ErrSessionAlreadyOpen.
func (uc *SessionUseCase) OpenSession(ctx context.Context, userID string, in dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	if in.OpeningAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	var session *entity.RegisterSession
	err := uc.txRunner.RunRegister(ctx, func(
		registerRepo repository.RegisterRepository,
		sessionRepo repository.RegisterSessionRepository,
		_ repository.RegisterMovementRepository,
	) error {
		reg, err := registerRepo.GetForUpdate(ctx, in.RegisterID)
		if err != nil {
			return domain.Storage("bloquear caja", err)
		}
		if reg == nil {
			return domain.ErrNotFound
		}
		open, err := sessionRepo.GetOpenByRegister(ctx, reg.ID)
		if err != nil {
			return domain.Storage("buscar sesión abierta", err)
		}
		if open != nil {
			return domain.ErrSessionAlreadyOpen
		}
		session = &entity.RegisterSession{
			ID:            uuid.New().String(),
			RegisterID:    reg.ID,
			OpenedBy:      userID,
			OpenedAt:      uc.now(),
			OpeningAmount: in.OpeningAmount,
			ClosingAmount: decimal.Zero,
			TotalSales:    decimal.Zero,
			TotalCash:     decimal.Zero,
			TotalCard:     decimal.Zero,
			TotalTransfer: decimal.Zero,
			State:         entity.SessionStateOpen,
			OpeningNotes:  in.Notes,
		}
		if err := sessionRepo.Create(ctx, session); err != nil {
			if errors.Is(err, domain.ErrSessionAlreadyOpen) {
				return err
			}
			return domain.Storage("abrir sesión", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toSessionResponse(session)
	return &out, nil
}

// CloseSession totaliza las ventas de la sesión por medio de pago y la cierra.
// Mixto solo suma al total de ventas.
func (uc *SessionUseCase) CloseSession(ctx context.Context, sessionID string, in dto.CloseSessionRequest) (*dto.SessionResponse, error) {
	if in.ClosingAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	var session *entity.RegisterSession
	err := uc.txRunner.RunRegister(ctx, func(
		_ repository.RegisterRepository,
		sessionRepo repository.RegisterSessionRepository,
		cashRepo repository.RegisterMovementRepository,
	) error {
		var err error
		session, err = lockOpenSession(ctx, sessionRepo, sessionID)
		if err != nil {
			return err
		}
		totals, err := cashRepo.SaleTotalsByTender(ctx, session.ID)
		if err != nil {
			return domain.Storage("totalizar sesión", err)
		}
		session.TotalSales = decimal.Zero
		for _, v := range totals {
			session.TotalSales = session.TotalSales.Add(v)
		}
		session.TotalCash = totals[entity.TenderCash]
		session.TotalCard = totals[entity.TenderCard]
		session.TotalTransfer = totals[entity.TenderTransfer]
		session.ClosingAmount = in.ClosingAmount
		session.ClosingNotes = in.Notes
		session.State = entity.SessionStateClosed
		closedAt := uc.now()
		session.ClosedAt = &closedAt
		if err := sessionRepo.Close(ctx, session); err != nil {
			return domain.Storage("cerrar sesión", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toSessionResponse(session)
	return &out, nil
}

// ActiveSession sesión abierta de la caja o ErrNotFound.
func (uc *SessionUseCase) ActiveSession(ctx context.Context, registerID string) (*dto.SessionResponse, error) {
	session, err := uc.sessionRepo.GetOpenByRegister(ctx, registerID)
	if err != nil {
		return nil, domain.Storage("buscar sesión abierta", err)
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	out := toSessionResponse(session)
	return &out, nil
}

// AddMovement entrada, salida o devolución manual; solo con la sesión abierta.
// El tipo "sale" lo genera únicamente la venta.
func (uc *SessionUseCase) AddMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	switch in.Kind {
	case entity.RegisterMovementIn, entity.RegisterMovementOut, entity.RegisterMovementRefund:
	default:
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if strings.TrimSpace(in.Concept) == "" {
		return nil, domain.ErrInvalidInput
	}
	tender := in.Tender
	if tender == "" {
		tender = entity.TenderCash
	}
	if !entity.IsValidTender(tender) {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.RegisterMovement
	err := uc.txRunner.RunRegister(ctx, func(
		_ repository.RegisterRepository,
		sessionRepo repository.RegisterSessionRepository,
		cashRepo repository.RegisterMovementRepository,
	) error {
		session, err := lockOpenSession(ctx, sessionRepo, in.SessionID)
		if err != nil {
			return err
		}
		mov = &entity.RegisterMovement{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Kind:      in.Kind,
			Amount:    in.Amount,
			Concept:   strings.TrimSpace(in.Concept),
			Reference: in.Reference,
			Tender:    tender,
			CreatedBy: userID,
			CreatedAt: uc.now(),
		}
		if err := cashRepo.Create(ctx, mov); err != nil {
			return domain.Storage("crear movimiento de caja", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toRegisterMovementResponse(mov)
	return &out, nil
}

// ListMovements movimientos de la sesión.
func (uc *SessionUseCase) ListMovements(ctx context.Context, sessionID string) ([]dto.RegisterMovementResponse, error) {
	if _, err := uc.getSession(ctx, sessionID); err != nil {
		return nil, err
	}
	list, err := uc.cashRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, domain.Storage("listar movimientos de caja", err)
	}
	out := make([]dto.RegisterMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toRegisterMovementResponse(m))
	}
	return out, nil
}

func (uc *SessionUseCase) getSession(ctx context.Context, id string) (*entity.RegisterSession, error) {
	s, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer sesión", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// lockOpenSession bloquea la sesión; inexistente -> ErrNotFound, cerrada -> ErrSessionClosed.
func lockOpenSession(ctx context.Context, sessionRepo repository.RegisterSessionRepository, id string) (*entity.RegisterSession, error) {
	session, err := sessionRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, domain.Storage("bloquear sesión", err)
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if !session.IsOpen() {
		return nil, domain.ErrSessionClosed
	}
	return session, nil
}

func toRegisterResponse(r *entity.Register) dto.RegisterResponse {
	return dto.RegisterResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		CreatedAt:   r.CreatedAt,
	}
}

func toSessionResponse(s *entity.RegisterSession) dto.SessionResponse {
	return dto.SessionResponse{
		ID:            s.ID,
		RegisterID:    s.RegisterID,
		OpenedBy:      s.OpenedBy,
		OpenedAt:      s.OpenedAt,
		ClosedAt:      s.ClosedAt,
		OpeningAmount: s.OpeningAmount,
		ClosingAmount: s.ClosingAmount,
		TotalSales:    s.TotalSales,
		TotalCash:     s.TotalCash,
		TotalCard:     s.TotalCard,
		TotalTransfer: s.TotalTransfer,
		State:         s.State,
		OpeningNotes:  s.OpeningNotes,
		ClosingNotes:  s.ClosingNotes,
	}
}

func toRegisterMovementResponse(m *entity.RegisterMovement) dto.RegisterMovementResponse {
	return dto.RegisterMovementResponse{
		ID:        m.ID,
		SessionID: m.SessionID,
		Kind:      m.Kind,
		Amount:    m.Amount,
		Concept:   m.Concept,
		Reference: m.Reference,
		Tender:    m.Tender,
		SaleID:    m.SaleID,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
