package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// ReplenishmentUseCase genera las alertas de stock bajo con la cantidad sugerida de pedido.
// Combina existencias con las listas de precios de proveedores para priorizar la compra.
type ReplenishmentUseCase struct {
	stockRepo    repository.StockRepository
	supplierRepo repository.SupplierRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	stockRepo repository.StockRepository,
	supplierRepo repository.SupplierRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		stockRepo:    stockRepo,
		supplierRepo: supplierRepo,
	}
}

// StockAlerts devuelve los insumos con OnHand <= MinStock. El stock ideal es el doble del mínimo
// (o 1 si el mínimo es 0) y la cantidad sugerida respeta la cantidad mínima del proveedor.
func (uc *ReplenishmentUseCase) StockAlerts(ctx context.Context) ([]dto.StockAlertDTO, error) {
	views, err := uc.stockRepo.ListLowStock(ctx)
	if err != nil {
		return nil, domain.Storage("listar stock bajo", err)
	}
	alerts := make([]dto.StockAlertDTO, 0, len(views))
	for _, v := range views {
		ideal := v.Supply.MinStock * 2
		if ideal == 0 {
			ideal = 1
		}
		suggested := ideal - v.Stock.OnHand
		if suggested < 0 {
			suggested = 0
		}
		alert := dto.StockAlertDTO{
			LowStockItem:       ToLowStockItem(v),
			EstimatedOrderCost: v.Supply.PurchasePrice.Mul(decimal.NewFromInt(suggested)),
		}

		offers, err := uc.supplierRepo.OffersForSupply(ctx, v.Supply.ID)
		if err != nil {
			return nil, domain.Storage("leer ofertas de proveedores", err)
		}
		if len(offers) > 0 {
			best := offers[0]
			if suggested > 0 && suggested < best.MinQuantity {
				suggested = best.MinQuantity
			}
			price := best.Price
			alert.BestSupplierID = best.SupplierID
			alert.BestSupplierName = best.SupplierName
			alert.BestPrice = &price
			alert.EstimatedOrderCost = price.Mul(decimal.NewFromInt(suggested))
		}
		alert.SuggestedOrderQty = suggested
		alerts = append(alerts, alert)
	}

	// Mayor déficit primero; desempate por nombre
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Deficit != alerts[j].Deficit {
			return alerts[i].Deficit > alerts[j].Deficit
		}
		return alerts[i].SupplyName < alerts[j].SupplyName
	})
	for i := range alerts {
		alerts[i].Priority = i + 1
	}
	return alerts, nil
}
