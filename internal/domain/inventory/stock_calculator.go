package inventory

import (
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// NextOnHand aplica la regla de recálculo de existencias (servicio de dominio).
//
//	in      -> anterior + cantidad
//	out     -> anterior - cantidad
//	adjust  -> cantidad (valor absoluto final)
//	reserve / release -> sin cambio en OnHand
//
// La cantidad debe ser > 0 salvo en adjust, donde 0 es un objetivo válido.
func NextOnHand(prev int64, kind string, qty int64) (int64, error) {
	if qty < 0 || (qty == 0 && kind != entity.StockMovementAdjust) {
		return prev, domain.ErrInvalidQuantity
	}
	switch kind {
	case entity.StockMovementIn:
		return prev + qty, nil
	case entity.StockMovementOut:
		return prev - qty, nil
	case entity.StockMovementAdjust:
		return qty, nil
	case entity.StockMovementReserve, entity.StockMovementRelease:
		return prev, nil
	}
	return prev, domain.ErrInvalidInput
}

// NextReserved recalcula el contador de reservas. Las guardas se validan aquí para que
// se evalúen con la fila ya bloqueada.
func NextReserved(rec *entity.StockRecord, kind string, qty int64) (int64, error) {
	switch kind {
	case entity.StockMovementReserve:
		if rec.Available() < qty {
			return rec.Reserved, &domain.InsufficientStockError{Lines: []domain.StockShortage{{
				SupplyID: rec.SupplyID, Requested: qty, Available: rec.Available(),
			}}}
		}
		return rec.Reserved + qty, nil
	case entity.StockMovementRelease:
		if rec.Reserved < qty {
			return rec.Reserved, domain.ErrInvalidQuantity
		}
		return rec.Reserved - qty, nil
	}
	return rec.Reserved, nil
}
