package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

type seedAccount struct {
	code, name, typ, subtype, description, parent string
}

// Mismo plan de cuentas que 002_seed_defaults.sql.
var defaultChart = []seedAccount{
	{"1000", "ACTIVOS", entity.AccountTypeAsset, entity.AccountSubtypeGroup, "Grupo principal de activos", ""},
	{"1100", "Activo Circulante", entity.AccountTypeAsset, entity.AccountSubtypeGroup, "Activos de corto plazo", "1000"},
	{"1101", "Caja", entity.AccountTypeAsset, entity.AccountSubtypeDetail, "Dinero en efectivo", "1100"},
	{"1102", "Bancos", entity.AccountTypeAsset, entity.AccountSubtypeDetail, "Cuentas bancarias", "1100"},
	{"1103", "Inventarios", entity.AccountTypeAsset, entity.AccountSubtypeDetail, "Mercancías y suministros", "1100"},
	{"1104", "Cuentas por Cobrar", entity.AccountTypeAsset, entity.AccountSubtypeDetail, "Dinero que nos deben", "1100"},
	{"2000", "PASIVOS", entity.AccountTypeLiability, entity.AccountSubtypeGroup, "Grupo principal de pasivos", ""},
	{"2100", "Pasivo Circulante", entity.AccountTypeLiability, entity.AccountSubtypeGroup, "Pasivos de corto plazo", "2000"},
	{"2101", "Cuentas por Pagar", entity.AccountTypeLiability, entity.AccountSubtypeDetail, "Dinero que debemos", "2100"},
	{"2102", "Proveedores", entity.AccountTypeLiability, entity.AccountSubtypeDetail, "Deudas con proveedores", "2100"},
	{"3000", "CAPITAL", entity.AccountTypeEquity, entity.AccountSubtypeGroup, "Capital del negocio", ""},
	{"3101", "Capital Social", entity.AccountTypeEquity, entity.AccountSubtypeDetail, "Aportación inicial", "3000"},
	{"4000", "INGRESOS", entity.AccountTypeIncome, entity.AccountSubtypeGroup, "Ingresos del negocio", ""},
	{"4101", "Ventas", entity.AccountTypeIncome, entity.AccountSubtypeDetail, "Ingresos por ventas", "4000"},
	{"4102", "Servicios", entity.AccountTypeIncome, entity.AccountSubtypeDetail, "Ingresos por servicios", "4000"},
	{"5000", "EGRESOS", entity.AccountTypeExpense, entity.AccountSubtypeGroup, "Gastos del negocio", ""},
	{"5101", "Compras", entity.AccountTypeExpense, entity.AccountSubtypeDetail, "Compra de mercancías", "5000"},
	{"5102", "Gastos Operativos", entity.AccountTypeExpense, entity.AccountSubtypeDetail, "Gastos de operación", "5000"},
	{"5103", "Salarios", entity.AccountTypeExpense, entity.AccountSubtypeDetail, "Pagos de nómina", "5000"},
}

var defaultCategories = []entity.PaymentCategory{
	{Name: "Ventas", Type: entity.PaymentTypeIncome, Description: "Ingresos por ventas"},
	{Name: "Servicios", Type: entity.PaymentTypeIncome, Description: "Ingresos por servicios"},
	{Name: "Compra de Suministros", Type: entity.PaymentTypeExpense, Description: "Compra de insumos a proveedores"},
	{Name: "Gastos Operativos", Type: entity.PaymentTypeExpense, Description: "Gastos de operación"},
	{Name: "Salarios", Type: entity.PaymentTypeExpense, Description: "Pagos de nómina"},
	{Name: "Servicios Públicos", Type: entity.PaymentTypeExpense, Description: "Luz, agua, internet"},
}

// DefaultRegisterName caja creada al sembrar datos.
const DefaultRegisterName = "Caja Principal"

// SeedDefaults carga plan de cuentas, caja principal y categorías de pago.
// Devuelve el id de la caja principal.
func (s *Store) SeedDefaults() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()

	idByCode := map[string]string{}
	levelByCode := map[string]int{}
	for _, a := range defaultChart {
		acc := entity.Account{
			ID:             uuid.New().String(),
			Code:           a.code,
			Name:           a.name,
			Type:           a.typ,
			Subtype:        a.subtype,
			Description:    a.description,
			InitialBalance: decimal.Zero,
			CurrentBalance: decimal.Zero,
			Level:          1,
			Lifecycle:      entity.LifecycleActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if a.parent != "" {
			parentID := idByCode[a.parent]
			acc.ParentID = &parentID
			acc.Level = levelByCode[a.parent] + 1
		}
		idByCode[a.code] = acc.ID
		levelByCode[a.code] = acc.Level
		s.d.accounts[acc.ID] = acc
	}

	for _, c := range defaultCategories {
		c.ID = uuid.New().String()
		c.Active = true
		s.d.categories = append(s.d.categories, c)
	}

	reg := entity.Register{
		ID:          uuid.New().String(),
		Name:        DefaultRegisterName,
		Description: "Caja registradora principal",
		Location:    "Mostrador",
		Lifecycle:   entity.LifecycleActive,
		CreatedAt:   now,
	}
	s.d.registers[reg.ID] = reg
	return reg.ID
}
