package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/accounting"
	"github.com/jhoicas/negocio-api/internal/application/analytics"
	"github.com/jhoicas/negocio-api/internal/application/auth"
	"github.com/jhoicas/negocio-api/internal/application/inventory"
	"github.com/jhoicas/negocio-api/internal/application/notification"
	"github.com/jhoicas/negocio-api/internal/application/register"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	SupplyUC      *usecase.SupplyUseCase
	StockUC       *inventory.StockLedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	LedgerUC      *accounting.LedgerUseCase
	SessionUC     *register.SessionUseCase
	SaleUC        *register.SaleUseCase
	SupplierUC    *usecase.SupplierUseCase
	PaymentUC     *usecase.PaymentUseCase
	DashboardUC   *analytics.DashboardUseCase
	EmailUC       *notification.EmailReportUseCase
	SalesPDF      salesPDF
	JWTSecret     string
}

// Router registra las rutas de la API.
// Las rutas fijas van antes que las de parámetro (/:id) porque Fiber resuelve en orden de registro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	admin := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/profile", authHandler.Profile)
	protected.Put("/auth/profile", authHandler.UpdateProfile)

	// Users (admin)
	users := protected.Group("/users", admin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Put("/:id/password", userHandler.ChangePassword)

	stockHandler := NewStockHandler(deps.StockUC)

	// Supplies
	supplies := protected.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	supplies.Get("/", supplyHandler.List)
	supplies.Get("/search", supplyHandler.Search)
	supplies.Get("/categories", supplyHandler.Categories)
	supplies.Get("/low-stock", stockHandler.LowStock)
	supplies.Get("/category/:category", supplyHandler.ByCategory)
	supplies.Get("/:id", supplyHandler.GetByID)
	supplies.Get("/:id/stock", stockHandler.Get)
	supplies.Get("/:id/movements", stockHandler.Movements)
	supplies.Post("/", admin, supplyHandler.Create)
	supplies.Put("/:id", admin, supplyHandler.Update)
	supplies.Delete("/:id", admin, supplyHandler.Delete)

	// Stock
	stock := protected.Group("/stock")
	stock.Get("/", stockHandler.List)
	stock.Get("/low-stock", stockHandler.LowStock)
	stock.Get("/movements", stockHandler.Movements)
	stock.Get("/report", stockHandler.Report)
	stock.Get("/:supplyId", stockHandler.Get)
	stock.Get("/:supplyId/movements", stockHandler.Movements)
	stock.Put("/:supplyId", stockHandler.Set)
	stock.Post("/:supplyId/movements", stockHandler.RecordMovement)
	stock.Post("/:supplyId/reserve", stockHandler.Reserve)
	stock.Post("/:supplyId/release", stockHandler.Release)
	stock.Post("/:supplyId/adjust", admin, stockHandler.Adjust)

	// Accounts
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.LedgerUC)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/balance-sheet", accountHandler.BalanceSheet)
	accounts.Get("/income-statement", accountHandler.IncomeStatement)
	accounts.Get("/report", accountHandler.Report)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Get("/:id/movements", accountHandler.Movements)
	accounts.Post("/:id/movements", accountHandler.RecordMovement)
	accounts.Post("/", admin, accountHandler.Create)
	accounts.Put("/:id", admin, accountHandler.Update)
	accounts.Delete("/:id", admin, accountHandler.Delete)

	// Caja: cajas, sesiones, movimientos y ventas
	caja := protected.Group("/caja")
	cajaHandler := NewCajaHandler(deps.SessionUC, deps.SaleUC, deps.SalesPDF)
	caja.Get("/registers", cajaHandler.ListRegisters)
	caja.Post("/registers", admin, cajaHandler.CreateRegister)
	caja.Get("/registers/:id", cajaHandler.GetRegister)
	caja.Get("/registers/:id/active-session", cajaHandler.ActiveSession)
	caja.Get("/registers/:id/report", admin, cajaHandler.RegisterReport)
	caja.Post("/sessions/open", cajaHandler.OpenSession)
	caja.Put("/sessions/:id/close", cajaHandler.CloseSession)
	caja.Get("/sessions/:id/sales", cajaHandler.SessionSales)
	caja.Get("/sessions/:id/movements", cajaHandler.SessionMovements)
	caja.Post("/movements", cajaHandler.AddMovement)
	caja.Post("/sales", cajaHandler.CreateSale)
	caja.Get("/sales/daily", cajaHandler.DailySales)
	caja.Get("/sales/report", cajaHandler.SalesReport)
	caja.Get("/sales/:id", cajaHandler.GetSale)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/search", supplierHandler.List)
	suppliers.Get("/report", supplierHandler.ReportAll)
	suppliers.Get("/supply/:supplyId/best-price", supplierHandler.BestPrice)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Get("/:id/supplies", supplierHandler.Supplies)
	suppliers.Get("/:id/report", supplierHandler.Report)
	suppliers.Post("/", admin, supplierHandler.Create)
	suppliers.Put("/:id", admin, supplierHandler.Update)
	suppliers.Delete("/:id", admin, supplierHandler.Delete)
	suppliers.Post("/:id/supplies", admin, supplierHandler.AddSupply)
	suppliers.Delete("/:id/supplies/:supplyId", admin, supplierHandler.RemoveSupply)

	// Payments
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Get("/", paymentHandler.List)
	payments.Get("/categories", paymentHandler.Categories)
	payments.Get("/report", paymentHandler.Report)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Post("/", paymentHandler.Create)
	payments.Put("/:id", admin, paymentHandler.Update)
	payments.Delete("/:id", admin, paymentHandler.Delete)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.DashboardUC, deps.Replenishment)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/stock-alerts", reportHandler.StockAlerts)
	reports.Get("/sales-by-tender", reportHandler.SalesByTender)
	reports.Get("/monthly", reportHandler.Monthly)

	// Email mensual
	email := protected.Group("/email")
	emailHandler := NewEmailHandler(deps.EmailUC)
	email.Get("/config", emailHandler.GetConfig)
	email.Post("/config", admin, emailHandler.Configure)
	email.Post("/test", emailHandler.SendTest)
}
