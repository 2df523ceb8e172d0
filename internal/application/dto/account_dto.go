package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest entrada para crear una cuenta contable.
type CreateAccountRequest struct {
	Code           string          `json:"code" validate:"required,min=1,max=20"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Type           string          `json:"type" validate:"required"`
	Subtype        string          `json:"subtype" validate:"omitempty,oneof=group detail"`
	Description    string          `json:"description" validate:"max=500"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	ParentID       *string         `json:"parent_id" validate:"omitempty,uuid"`
}

// UpdateAccountRequest actualización parcial. Código y tipo solo si la cuenta no tiene movimientos.
type UpdateAccountRequest struct {
	Code        *string `json:"code" validate:"omitempty,min=1,max=20"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type        *string `json:"type"`
	Subtype     *string `json:"subtype" validate:"omitempty,oneof=group detail"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Subtype        string          `json:"subtype"`
	Description    string          `json:"description"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	ParentID       *string         `json:"parent_id,omitempty"`
	Level          int             `json:"level"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountMovementRequest body para POST /api/accounts/:id/movements.
type AccountMovementRequest struct {
	Side           string          `json:"side" validate:"required,oneof=debit credit"`
	Amount         decimal.Decimal `json:"amount"`
	Concept        string          `json:"concept" validate:"required,max=300"`
	Reference      string          `json:"reference" validate:"max=200"`
	Document       string          `json:"document" validate:"max=200"`
	JournalEntryID *string         `json:"journal_entry_id"`
}

// AccountMovementResponse movimiento contable.
type AccountMovementResponse struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	Side           string          `json:"side"`
	Amount         decimal.Decimal `json:"amount"`
	Concept        string          `json:"concept"`
	Reference      string          `json:"reference"`
	Document       string          `json:"document"`
	JournalEntryID *string         `json:"journal_entry_id,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BalanceSheetDTO balance general por tipo de cuenta.
// Difference = Assets - (Liabilities + Equity); se informa pero no se fuerza a cero.
type BalanceSheetDTO struct {
	Assets      decimal.Decimal            `json:"assets"`
	Liabilities decimal.Decimal            `json:"liabilities"`
	Equity      decimal.Decimal            `json:"equity"`
	Difference  decimal.Decimal            `json:"difference"`
	ByType      map[string]decimal.Decimal `json:"by_type"`
	Accounts    []AccountResponse          `json:"accounts"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// IncomeStatementLine importe de una cuenta en el periodo (débito positivo).
type IncomeStatementLine struct {
	AccountID string          `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeStatementDTO estado de resultados del periodo [Start, End].
type IncomeStatementDTO struct {
	Start         string                `json:"start"`
	End           string                `json:"end"`
	Income        []IncomeStatementLine `json:"income"`
	Expenses      []IncomeStatementLine `json:"expenses"`
	TotalIncome   decimal.Decimal       `json:"total_income"`
	TotalExpenses decimal.Decimal       `json:"total_expenses"`
	NetIncome     decimal.Decimal       `json:"net_income"`
}

// AccountTypeSummary conteo y saldo por tipo de cuenta.
type AccountTypeSummary struct {
	Type    string          `json:"type"`
	Count   int             `json:"count"`
	Balance decimal.Decimal `json:"balance"`
}
