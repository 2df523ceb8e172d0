package accounting

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/accounting"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
)

// LedgerUseCase plan de cuentas y movimientos contables.
// Cada movimiento se registra con la cuenta bloqueada y el saldo se recalcula en la misma transacción.
type LedgerUseCase struct {
	txRunner    TxRunner
	accountRepo repository.AccountRepository
	movRepo     repository.AccountMovementRepository
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, accountRepo repository.AccountRepository, movRepo repository.AccountMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, accountRepo: accountRepo, movRepo: movRepo, now: time.Now}
}

// MovementInput entrada de un movimiento contable.
type MovementInput struct {
	AccountID      string
	Side           string
	Amount         decimal.Decimal
	Concept        string
	Reference      string
	Document       string
	JournalEntryID *string
	UserID         string
}

// CreateAccount crea una cuenta. El saldo actual arranca en el saldo inicial.
func (uc *LedgerUseCase) CreateAccount(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidAccountType(in.Type) {
		return nil, domain.ErrInvalidAccountType
	}
	subtype := in.Subtype
	if subtype == "" {
		subtype = entity.AccountSubtypeDetail
	}
	existing, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, domain.Storage("buscar cuenta", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateCode
	}
	level, err := uc.levelFor(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	acc := &entity.Account{
		ID:             uuid.New().String(),
		Code:           code,
		Name:           strings.TrimSpace(in.Name),
		Type:           in.Type,
		Subtype:        subtype,
		Description:    in.Description,
		InitialBalance: in.InitialBalance,
		CurrentBalance: in.InitialBalance,
		ParentID:       in.ParentID,
		Level:          level,
		Lifecycle:      entity.LifecycleActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.accountRepo.Create(ctx, acc); err != nil {
		if errors.Is(err, domain.ErrDuplicateCode) {
			return nil, err
		}
		return nil, domain.Storage("crear cuenta", err)
	}
	return toAccountResponse(acc), nil
}

// UpdateAccount actualización parcial. Código y tipo no cambian si la cuenta ya tiene movimientos.
func (uc *LedgerUseCase) UpdateAccount(ctx context.Context, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	acc, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	codeChanged := in.Code != nil && strings.TrimSpace(*in.Code) != acc.Code
	typeChanged := in.Type != nil && *in.Type != acc.Type
	if codeChanged || typeChanged {
		n, err := uc.movRepo.CountByAccount(ctx, id)
		if err != nil {
			return nil, domain.Storage("contar movimientos", err)
		}
		if n > 0 {
			return nil, domain.ErrHasMovements
		}
	}
	if codeChanged {
		code := strings.TrimSpace(*in.Code)
		other, err := uc.accountRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, domain.Storage("buscar cuenta", err)
		}
		if other != nil {
			return nil, domain.ErrDuplicateCode
		}
		acc.Code = code
	}
	if typeChanged {
		if !entity.IsValidAccountType(*in.Type) {
			return nil, domain.ErrInvalidAccountType
		}
		acc.Type = *in.Type
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		acc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		acc.Description = *in.Description
	}
	if in.Subtype != nil {
		acc.Subtype = *in.Subtype
	}
	if in.ParentID != nil {
		if *in.ParentID == acc.ID {
			return nil, domain.ErrInvalidInput
		}
		level, err := uc.levelFor(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		acc.ParentID = in.ParentID
		acc.Level = level
	}
	acc.UpdatedAt = uc.now()
	if err := uc.accountRepo.Update(ctx, acc); err != nil {
		return nil, domain.Storage("actualizar cuenta", err)
	}
	return toAccountResponse(acc), nil
}

// RecordMovement agrega un movimiento y recalcula el saldo con la cuenta bloqueada.
// Si el recálculo falla no queda el movimiento.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in MovementInput) (*dto.AccountMovementResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if in.Side != entity.SideDebit && in.Side != entity.SideCredit {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Concept) == "" {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.AccountMovement
	err := uc.txRunner.RunAccounting(ctx, func(accountRepo repository.AccountRepository, movRepo repository.AccountMovementRepository) error {
		acc, err := accountRepo.GetForUpdate(ctx, in.AccountID)
		if err != nil {
			return domain.Storage("bloquear cuenta", err)
		}
		if acc == nil {
			return domain.ErrNotFound
		}
		mov = &entity.AccountMovement{
			ID:             uuid.New().String(),
			AccountID:      acc.ID,
			Side:           in.Side,
			Amount:         in.Amount,
			Concept:        strings.TrimSpace(in.Concept),
			Reference:      in.Reference,
			Document:       in.Document,
			JournalEntryID: in.JournalEntryID,
			CreatedBy:      in.UserID,
			CreatedAt:      uc.now(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return domain.Storage("crear movimiento contable", err)
		}
		_, err = recompute(ctx, accountRepo, movRepo, acc)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := toAccountMovementResponse(mov)
	return &out, nil
}

// RecomputeBalance recalcula el saldo desde todos los movimientos y lo persiste.
func (uc *LedgerUseCase) RecomputeBalance(ctx context.Context, accountID string) (*dto.AccountResponse, error) {
	var acc *entity.Account
	err := uc.txRunner.RunAccounting(ctx, func(accountRepo repository.AccountRepository, movRepo repository.AccountMovementRepository) error {
		var err error
		acc, err = accountRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			return domain.Storage("bloquear cuenta", err)
		}
		if acc == nil {
			return domain.ErrNotFound
		}
		acc.CurrentBalance, err = recompute(ctx, accountRepo, movRepo, acc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toAccountResponse(acc), nil
}

func recompute(ctx context.Context, accountRepo repository.AccountRepository, movRepo repository.AccountMovementRepository, acc *entity.Account) (decimal.Decimal, error) {
	debit, credit, err := movRepo.Totals(ctx, acc.ID)
	if err != nil {
		return decimal.Zero, domain.Storage("totalizar movimientos", err)
	}
	balance := accounting.Balance(acc.Type, acc.InitialBalance, debit, credit)
	if err := accountRepo.UpdateBalance(ctx, acc.ID, balance); err != nil {
		return decimal.Zero, domain.Storage("actualizar saldo", err)
	}
	return balance, nil
}

// DeleteAccount retira la cuenta; con movimientos devuelve ErrHasMovements.
func (uc *LedgerUseCase) DeleteAccount(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.movRepo.CountByAccount(ctx, id)
	if err != nil {
		return domain.Storage("contar movimientos", err)
	}
	if n > 0 {
		return domain.ErrHasMovements
	}
	if err := uc.accountRepo.Retire(ctx, id); err != nil {
		return domain.Storage("retirar cuenta", err)
	}
	return nil
}

// GetAccount obtiene una cuenta activa.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, id string) (*dto.AccountResponse, error) {
	acc, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(acc), nil
}

// ListAccounts cuentas activas, opcionalmente de un tipo.
func (uc *LedgerUseCase) ListAccounts(ctx context.Context, accountType string) ([]dto.AccountResponse, error) {
	if accountType != "" && !entity.IsValidAccountType(accountType) {
		return nil, domain.ErrInvalidAccountType
	}
	list, err := uc.accountRepo.List(ctx, accountType)
	if err != nil {
		return nil, domain.Storage("listar cuentas", err)
	}
	out := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAccountResponse(a))
	}
	return out, nil
}

// ListMovements movimientos de la cuenta, más recientes primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, accountID string, page dto.PageRequest) ([]dto.AccountMovementResponse, error) {
	if _, err := uc.get(ctx, accountID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByAccount(ctx, accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Storage("listar movimientos contables", err)
	}
	out := make([]dto.AccountMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toAccountMovementResponse(m))
	}
	return out, nil
}

// BalanceSheet totales por tipo de las cuentas de detalle activas.
// La diferencia activo - (pasivo + patrimonio) se informa, no se corrige.
func (uc *LedgerUseCase) BalanceSheet(ctx context.Context) (*dto.BalanceSheetDTO, error) {
	list, err := uc.accountRepo.List(ctx, "")
	if err != nil {
		return nil, domain.Storage("listar cuentas", err)
	}
	sheet := &dto.BalanceSheetDTO{
		ByType:      map[string]decimal.Decimal{},
		Accounts:    make([]dto.AccountResponse, 0),
		GeneratedAt: uc.now(),
	}
	for _, a := range list {
		if a.Subtype != entity.AccountSubtypeDetail {
			continue
		}
		sheet.ByType[a.Type] = sheet.ByType[a.Type].Add(a.CurrentBalance)
		sheet.Accounts = append(sheet.Accounts, *toAccountResponse(a))
	}
	sheet.Assets = sheet.ByType[entity.AccountTypeAsset]
	sheet.Liabilities = sheet.ByType[entity.AccountTypeLiability]
	sheet.Equity = sheet.ByType[entity.AccountTypeEquity]
	sheet.Difference = sheet.Assets.Sub(sheet.Liabilities.Add(sheet.Equity))
	return sheet, nil
}

// IncomeStatement estado de resultados entre dos fechas inclusivas (YYYY-MM-DD).
// Cada línea es débito - crédito; ingresos = -Σ(ingresos), neto = ingresos - gastos.
func (uc *LedgerUseCase) IncomeStatement(ctx context.Context, startStr, endStr string) (*dto.IncomeStatementDTO, error) {
	start, end, err := dto.ParsePeriod(startStr, endStr, uc.now())
	if err != nil {
		return nil, err
	}
	totals, err := uc.movRepo.PeriodTotals(ctx, start, end)
	if err != nil {
		return nil, domain.Storage("totalizar periodo", err)
	}
	accounts, err := uc.accountRepo.List(ctx, "")
	if err != nil {
		return nil, domain.Storage("listar cuentas", err)
	}
	byID := make(map[string]*entity.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	st := &dto.IncomeStatementDTO{
		Start:         start.Format(dto.DateLayout),
		End:           end.Format(dto.DateLayout),
		Income:        []dto.IncomeStatementLine{},
		Expenses:      []dto.IncomeStatementLine{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	incomeSum := decimal.Zero
	for _, t := range totals {
		a, ok := byID[t.AccountID]
		if !ok {
			continue
		}
		line := dto.IncomeStatementLine{
			AccountID: a.ID,
			Code:      a.Code,
			Name:      a.Name,
			Type:      a.Type,
			Amount:    t.Debit.Sub(t.Credit),
		}
		switch a.Type {
		case entity.AccountTypeIncome:
			st.Income = append(st.Income, line)
			incomeSum = incomeSum.Add(line.Amount)
		case entity.AccountTypeExpense:
			st.Expenses = append(st.Expenses, line)
			st.TotalExpenses = st.TotalExpenses.Add(line.Amount)
		}
	}
	sortLines(st.Income)
	sortLines(st.Expenses)
	st.TotalIncome = incomeSum.Neg()
	st.NetIncome = st.TotalIncome.Sub(st.TotalExpenses)
	return st, nil
}

// AccountsReport cantidad de cuentas y saldo por tipo.
func (uc *LedgerUseCase) AccountsReport(ctx context.Context) ([]dto.AccountTypeSummary, error) {
	list, err := uc.accountRepo.List(ctx, "")
	if err != nil {
		return nil, domain.Storage("listar cuentas", err)
	}
	byType := map[string]*dto.AccountTypeSummary{}
	for _, a := range list {
		row, ok := byType[a.Type]
		if !ok {
			row = &dto.AccountTypeSummary{Type: a.Type, Balance: decimal.Zero}
			byType[a.Type] = row
		}
		row.Count++
		row.Balance = row.Balance.Add(a.CurrentBalance)
	}
	out := make([]dto.AccountTypeSummary, 0, len(byType))
	for _, t := range []string{entity.AccountTypeAsset, entity.AccountTypeLiability, entity.AccountTypeEquity, entity.AccountTypeIncome, entity.AccountTypeExpense} {
		if row, ok := byType[t]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (uc *LedgerUseCase) levelFor(ctx context.Context, parentID *string) (int, error) {
	if parentID == nil || *parentID == "" {
		return 1, nil
	}
	parent, err := uc.accountRepo.GetByID(ctx, *parentID)
	if err != nil {
		return 0, domain.Storage("leer cuenta padre", err)
	}
	if parent == nil {
		return 0, domain.ErrNotFound
	}
	return parent.Level + 1, nil
}

func (uc *LedgerUseCase) get(ctx context.Context, id string) (*entity.Account, error) {
	acc, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer cuenta", err)
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	return acc, nil
}

func sortLines(lines []dto.IncomeStatementLine) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].Code < lines[j].Code })
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:             a.ID,
		Code:           a.Code,
		Name:           a.Name,
		Type:           a.Type,
		Subtype:        a.Subtype,
		Description:    a.Description,
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		ParentID:       a.ParentID,
		Level:          a.Level,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toAccountMovementResponse(m *entity.AccountMovement) dto.AccountMovementResponse {
	return dto.AccountMovementResponse{
		ID:             m.ID,
		AccountID:      m.AccountID,
		Side:           m.Side,
		Amount:         m.Amount,
		Concept:        m.Concept,
		Reference:      m.Reference,
		Document:       m.Document,
		JournalEntryID: m.JournalEntryID,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}
