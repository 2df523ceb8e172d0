package register

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

var validate = validator.New()

// saleNumbers genera números V<unix-millis> estrictamente crecientes dentro del proceso.
type saleNumbers struct {
	mu   sync.Mutex
	last int64
}

func (g *saleNumbers) next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return "V" + strconv.FormatInt(ms, 10)
}

// SaleUseCase motor de ventas y reportes de caja.
type SaleUseCase struct {
	txRunner     TxRunner
	supplyRepo   repository.SupplyRepository
	saleRepo     repository.SaleRepository
	registerRepo repository.RegisterRepository
	sessionRepo  repository.RegisterSessionRepository
	numbers      *saleNumbers
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	supplyRepo repository.SupplyRepository,
	saleRepo repository.SaleRepository,
	registerRepo repository.RegisterRepository,
	sessionRepo repository.RegisterSessionRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		supplyRepo:   supplyRepo,
		saleRepo:     saleRepo,
		registerRepo: registerRepo,
		sessionRepo:  sessionRepo,
		numbers:      &saleNumbers{},
		now:          time.Now,
	}
}

// CreateSale valida, calcula totales y registra la venta en una sola transacción:
// sesión bloqueada, filas de stock bloqueadas en orden de id, venta, líneas y movimiento de caja.
// El descuento de stock de cada línea va en un savepoint; si falla se registra y la venta sigue.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidTender(in.Tender) {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() || in.Tax.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if email := strings.TrimSpace(in.CustomerEmail); email != "" {
		if err := validate.Var(email, "email"); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	names := map[string]string{}
	needed := map[string]int64{}
	lines := make([]entity.SaleLine, 0, len(in.Lines))
	subtotal := decimal.Zero
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if !l.UnitPrice.IsPositive() || l.Discount.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		if _, seen := names[l.SupplyID]; !seen {
			supply, err := uc.supplyRepo.GetByID(ctx, l.SupplyID)
			if err != nil {
				return nil, domain.Storage("leer insumo", err)
			}
			if supply == nil {
				return nil, domain.ErrNotFound
			}
			names[l.SupplyID] = supply.Name
		}
		needed[l.SupplyID] += l.Quantity
		lineSubtotal := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)).Sub(l.Discount)
		subtotal = subtotal.Add(lineSubtotal)
		lines = append(lines, entity.SaleLine{
			ID:         uuid.New().String(),
			SupplyID:   l.SupplyID,
			SupplyName: names[l.SupplyID],
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Discount:   l.Discount,
			Subtotal:   lineSubtotal,
		})
	}
	total := subtotal.Sub(in.Discount).Add(in.Tax)
	if !total.IsPositive() {
		return nil, domain.ErrInvalidTotal
	}

	ids := make([]string, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		sessionRepo repository.RegisterSessionRepository,
		saleRepo repository.SaleRepository,
		cashRepo repository.RegisterMovementRepository,
		stockRepo repository.StockRepository,
		savepoint inventory.Savepoint,
	) error {
		session, err := lockOpenSession(ctx, sessionRepo, in.SessionID)
		if err != nil {
			return err
		}

		var shortages []domain.StockShortage
		for _, id := range ids {
			rec, err := stockRepo.GetForUpdate(ctx, id)
			if err != nil {
				return domain.Storage("bloquear stock", err)
			}
			if rec.OnHand < needed[id] {
				shortages = append(shortages, domain.StockShortage{
					SupplyID:   id,
					SupplyName: names[id],
					Requested:  needed[id],
					Available:  rec.OnHand,
				})
			}
		}
		if len(shortages) > 0 {
			return &domain.InsufficientStockError{Lines: shortages}
		}

		now := uc.now()
		sale = &entity.Sale{
			ID:            uuid.New().String(),
			Number:        uc.numbers.next(now),
			SessionID:     session.ID,
			CustomerName:  in.CustomerName,
			CustomerEmail: strings.TrimSpace(in.CustomerEmail),
			CustomerPhone: in.CustomerPhone,
			Subtotal:      subtotal,
			Discount:      in.Discount,
			Tax:           in.Tax,
			Total:         total,
			Tender:        in.Tender,
			State:         entity.SaleStateCompleted,
			CreatedBy:     userID,
			Notes:         in.Notes,
			CreatedAt:     now,
			Lines:         lines,
		}
		for i := range sale.Lines {
			sale.Lines[i].SaleID = sale.ID
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return err
			}
			return domain.Storage("crear venta", err)
		}

		saleID := sale.ID
		if err := cashRepo.Create(ctx, &entity.RegisterMovement{
			ID:        uuid.New().String(),
			SessionID: session.ID,
			Kind:      entity.RegisterMovementSale,
			Amount:    total,
			Concept:   "Venta " + sale.Number,
			Reference: sale.Number,
			Tender:    in.Tender,
			SaleID:    &saleID,
			CreatedBy: userID,
			CreatedAt: now,
		}); err != nil {
			return domain.Storage("crear movimiento de venta", err)
		}

		for _, line := range sale.Lines {
			input := inventory.MovementInput{
				SupplyID:  line.SupplyID,
				Kind:      entity.StockMovementOut,
				Quantity:  line.Quantity,
				Reason:    "Venta " + sale.Number,
				Reference: sale.ID,
				UserID:    userID,
			}
			err := savepoint(ctx, func(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository) error {
				_, _, err := inventory.ApplyInTx(ctx, movRepo, stockRepo, input, now)
				return err
			})
			if err != nil {
				log.Warn().Err(err).
					Str("sale", sale.Number).
					Str("supply_id", line.SupplyID).
					Int64("quantity", line.Quantity).
					Msg("no se pudo descontar stock de la venta")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(sale, true)
	return &out, nil
}

// GetSale venta con sus líneas y nombres de insumo.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer venta", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	out := toSaleResponse(sale, true)
	return &out, nil
}

// ListSales ventas de la sesión, más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, sessionID string) ([]dto.SaleResponse, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, domain.Storage("leer sesión", err)
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.saleRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, domain.Storage("listar ventas", err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, false))
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale, withLines bool) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		SessionID:     s.SessionID,
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		CustomerPhone: s.CustomerPhone,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Tax:           s.Tax,
		Total:         s.Total,
		Tender:        s.Tender,
		State:         s.State,
		CreatedBy:     s.CreatedBy,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
	if withLines {
		out.Lines = make([]dto.SaleLineResponse, 0, len(s.Lines))
		for _, l := range s.Lines {
			out.Lines = append(out.Lines, dto.SaleLineResponse{
				SupplyID:   l.SupplyID,
				SupplyName: l.SupplyName,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
				Discount:   l.Discount,
				Subtotal:   l.Subtotal,
			})
		}
	}
	return out
}
