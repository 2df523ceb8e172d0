package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/inventory"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

const reasonManualUpdate = "actualización manual"

// StockLedgerUseCase registra movimientos de existencias de forma transaccional
// (in, out, adjust, reserve, release) con bloqueo de fila (SELECT FOR UPDATE).
type StockLedgerUseCase struct {
	txRunner   TxRunner
	supplyRepo repository.SupplyRepository
	stockRepo  repository.StockRepository
	movRepo    repository.StockMovementRepository
	now        func() time.Time
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	supplyRepo repository.SupplyRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:   txRunner,
		supplyRepo: supplyRepo,
		stockRepo:  stockRepo,
		movRepo:    movRepo,
		now:        time.Now,
	}
}

// MovementInput entrada para registrar un movimiento de existencias.
// En adjust Quantity es el valor final; Location solo se aplica si no es nil.
type MovementInput struct {
	SupplyID  string
	Kind      string
	Quantity  int64
	Reason    string
	Reference string
	UserID    string
	Location  *string
}

// GetStock devuelve las existencias del insumo; sin registro se lee como cero.
func (uc *StockLedgerUseCase) GetStock(ctx context.Context, supplyID string) (*dto.StockResponse, error) {
	supply, err := uc.activeSupply(ctx, supplyID)
	if err != nil {
		return nil, err
	}
	rec, err := uc.stockRepo.Get(ctx, supplyID)
	if err != nil {
		return nil, domain.Storage("leer stock", err)
	}
	out := ToStockResponse(supply, rec)
	return &out, nil
}

// SetStock fija la cantidad y ubicación; deja un movimiento adjust con motivo "actualización manual".
func (uc *StockLedgerUseCase) SetStock(ctx context.Context, supplyID, userID string, in dto.SetStockRequest) (*dto.StockResponse, error) {
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	supply, err := uc.activeSupply(ctx, supplyID)
	if err != nil {
		return nil, err
	}
	loc := in.Location
	rec, _, err := uc.apply(ctx, MovementInput{
		SupplyID: supplyID,
		Kind:     entity.StockMovementAdjust,
		Quantity: in.Quantity,
		Reason:   reasonManualUpdate,
		UserID:   userID,
		Location: &loc,
	})
	if err != nil {
		return nil, err
	}
	out := ToStockResponse(supply, rec)
	return &out, nil
}

// RecordMovement valida, bloquea la fila de stock, aplica la regla de recálculo y guarda el
// movimiento con su foto antes/después. Commit o Rollback los hace TxRunner.Run.
func (uc *StockLedgerUseCase) RecordMovement(ctx context.Context, input MovementInput) (*dto.StockMovementResponse, error) {
	if !entity.IsValidStockMovementKind(input.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity < 0 || (input.Quantity == 0 && input.Kind != entity.StockMovementAdjust) {
		return nil, domain.ErrInvalidQuantity
	}
	supply, err := uc.activeSupply(ctx, input.SupplyID)
	if err != nil {
		return nil, err
	}
	_, mov, err := uc.apply(ctx, input)
	if err != nil {
		return nil, err
	}
	mov.SupplyName = supply.Name
	out := ToStockMovementResponse(mov)
	return &out, nil
}

// Reserve retiene qty unidades; requiere OnHand - Reserved >= qty con la fila bloqueada.
func (uc *StockLedgerUseCase) Reserve(ctx context.Context, supplyID, userID string, qty int64, reason string) (*dto.StockResponse, error) {
	return uc.counterMovement(ctx, entity.StockMovementReserve, supplyID, userID, qty, reason)
}

// Release libera qty unidades reservadas; nunca deja Reserved por debajo de cero.
func (uc *StockLedgerUseCase) Release(ctx context.Context, supplyID, userID string, qty int64, reason string) (*dto.StockResponse, error) {
	return uc.counterMovement(ctx, entity.StockMovementRelease, supplyID, userID, qty, reason)
}

// Adjust fija las existencias a target (0 es válido).
func (uc *StockLedgerUseCase) Adjust(ctx context.Context, supplyID, userID string, target int64, reason string) (*dto.StockResponse, error) {
	return uc.counterMovement(ctx, entity.StockMovementAdjust, supplyID, userID, target, reason)
}

func (uc *StockLedgerUseCase) counterMovement(ctx context.Context, kind, supplyID, userID string, qty int64, reason string) (*dto.StockResponse, error) {
	if qty < 0 || (qty == 0 && kind != entity.StockMovementAdjust) {
		return nil, domain.ErrInvalidQuantity
	}
	supply, err := uc.activeSupply(ctx, supplyID)
	if err != nil {
		return nil, err
	}
	rec, _, err := uc.apply(ctx, MovementInput{
		SupplyID: supplyID,
		Kind:     kind,
		Quantity: qty,
		Reason:   reason,
		UserID:   userID,
	})
	if err != nil {
		return nil, err
	}
	out := ToStockResponse(supply, rec)
	return &out, nil
}

func (uc *StockLedgerUseCase) apply(ctx context.Context, input MovementInput) (*entity.StockRecord, *entity.StockMovement, error) {
	var (
		rec *entity.StockRecord
		mov *entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository) error {
		var err error
		rec, mov, err = ApplyInTx(ctx, movRepo, stockRepo, input, uc.now())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return rec, mov, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados (misma transacción del caller).
// Lo usa también el motor de ventas para descontar cada línea dentro de su savepoint.
func ApplyInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockRecord, *entity.StockMovement, error) {
	// Bloquea la fila (la crea en cero si falta) para evitar condiciones de carrera
	rec, err := stockRepo.GetForUpdate(ctx, input.SupplyID)
	if err != nil {
		return nil, nil, domain.Storage("bloquear stock", err)
	}
	before := rec.OnHand

	switch input.Kind {
	case entity.StockMovementReserve, entity.StockMovementRelease:
		if input.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidQuantity
		}
		reserved, err := inventory.NextReserved(rec, input.Kind, input.Quantity)
		if err != nil {
			return nil, nil, err
		}
		rec.Reserved = reserved
	default:
		after, err := inventory.NextOnHand(before, input.Kind, input.Quantity)
		if err != nil {
			return nil, nil, err
		}
		if after < 0 {
			return nil, nil, &domain.InsufficientStockError{Lines: []domain.StockShortage{{
				SupplyID: input.SupplyID, Requested: input.Quantity, Available: before,
			}}}
		}
		rec.OnHand = after
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		SupplyID:       input.SupplyID,
		Kind:           input.Kind,
		Quantity:       input.Quantity,
		QuantityBefore: before,
		QuantityAfter:  rec.OnHand,
		Reason:         input.Reason,
		Reference:      input.Reference,
		CreatedBy:      input.UserID,
		CreatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, nil, domain.Storage("guardar movimiento de stock", err)
	}

	if input.Location != nil {
		rec.Location = *input.Location
	}
	rec.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, rec); err != nil {
		return nil, nil, domain.Storage("actualizar stock", err)
	}
	return rec, mov, nil
}

// ListStock todos los insumos activos con sus existencias.
func (uc *StockLedgerUseCase) ListStock(ctx context.Context) ([]dto.StockResponse, error) {
	views, err := uc.stockRepo.ListWithSupply(ctx)
	if err != nil {
		return nil, domain.Storage("listar stock", err)
	}
	out := make([]dto.StockResponse, 0, len(views))
	for i := range views {
		out = append(out, ToStockResponse(&views[i].Supply, &views[i].Stock))
	}
	return out, nil
}

// ListLowStock insumos activos con OnHand <= MinStock, ordenados por mayor déficit.
func (uc *StockLedgerUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	views, err := uc.stockRepo.ListLowStock(ctx)
	if err != nil {
		return nil, domain.Storage("listar stock bajo", err)
	}
	out := make([]dto.LowStockItem, 0, len(views))
	for _, v := range views {
		out = append(out, ToLowStockItem(v))
	}
	return out, nil
}

// ToLowStockItem alerta a partir de la vista insumo + stock.
func ToLowStockItem(v repository.StockView) dto.LowStockItem {
	return dto.LowStockItem{
		SupplyID:    v.Supply.ID,
		SupplyName:  v.Supply.Name,
		Category:    v.Supply.Category,
		OnHand:      v.Stock.OnHand,
		MinStock:    v.Supply.MinStock,
		Deficit:     v.Supply.MinStock - v.Stock.OnHand,
		HasRecord:   v.HasRecord,
		UnitMeasure: v.Supply.UnitMeasure,
	}
}

// ListMovements historial filtrado por insumo y rango de fechas.
func (uc *StockLedgerUseCase) ListMovements(ctx context.Context, filter repository.StockMovementFilter) ([]dto.StockMovementResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.SupplyID != "" {
		if _, err := uc.activeSupply(ctx, filter.SupplyID); err != nil {
			return nil, err
		}
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.Storage("listar movimientos de stock", err)
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToStockMovementResponse(m))
	}
	return out, nil
}

// StockReport resumen valorizado a precio de compra.
func (uc *StockLedgerUseCase) StockReport(ctx context.Context) (*dto.StockReportDTO, error) {
	items, err := uc.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	report := &dto.StockReportDTO{
		TotalItems:     len(items),
		InventoryValue: decimal.Zero,
		Items:          items,
		GeneratedAt:    uc.now(),
	}
	for _, it := range items {
		report.TotalUnits += it.OnHand
		report.TotalReserved += it.Reserved
		report.InventoryValue = report.InventoryValue.Add(it.StockValue)
		if it.LowStock {
			report.LowStockCount++
		}
	}
	return report, nil
}

func (uc *StockLedgerUseCase) activeSupply(ctx context.Context, id string) (*entity.Supply, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	supply, err := uc.supplyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.Storage("leer insumo", err)
	}
	if supply == nil || !supply.Lifecycle.IsActive() {
		return nil, domain.ErrNotFound
	}
	return supply, nil
}

// ToStockResponse compone insumo y registro de stock.
func ToStockResponse(s *entity.Supply, rec *entity.StockRecord) dto.StockResponse {
	return dto.StockResponse{
		SupplyID:      s.ID,
		SupplyName:    s.Name,
		Category:      s.Category,
		UnitMeasure:   s.UnitMeasure,
		MinStock:      s.MinStock,
		OnHand:        rec.OnHand,
		Reserved:      rec.Reserved,
		Available:     rec.Available(),
		Location:      rec.Location,
		LowStock:      rec.OnHand <= s.MinStock,
		OverReserved:  rec.OverReserved(),
		UpdatedAt:     rec.UpdatedAt,
		PurchasePrice: s.PurchasePrice,
		StockValue:    s.PurchasePrice.Mul(decimal.NewFromInt(rec.OnHand)),
	}
}

// ToStockMovementResponse mapea un movimiento a DTO.
func ToStockMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:             m.ID,
		SupplyID:       m.SupplyID,
		SupplyName:     m.SupplyName,
		Kind:           m.Kind,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		Reference:      m.Reference,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}
