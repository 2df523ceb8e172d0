package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnitMeasure unidad de medida cuando no se especifica.
const DefaultUnitMeasure = "unidad"

// Supply representa un insumo o producto del catálogo.
// Una vez referenciado por stock o ventas no se borra físicamente: se retira.
type Supply struct {
	ID            string
	Name          string
	Description   string
	Category      string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	MinStock      int64
	UnitMeasure   string
	Barcode       string
	Lifecycle     Lifecycle
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
