package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-ledger/internal/application/auth"
	"github.com/jhoicas/isp-ledger/internal/application/backup"
	"github.com/jhoicas/isp-ledger/internal/application/billing"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *billing.CustomerUseCase
	PaymentUC   *billing.PaymentUseCase
	ReportUC    *billing.ReportUseCase
	StatementUC *billing.StatementUseCase
	SyncUC      *backup.SyncUseCase
	JWTSecret   string
	ServiceName string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	requireSession := RequireSession(deps.AuthUC)

	// Auth (signup/login públicos)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireAuth, requireSession, authHandler.Logout)
	authGroup.Get("/me", requireAuth, requireSession, authHandler.Me)

	// Clientes y libro mensual
	customers := api.Group("/customers", requireAuth, requireSession)
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.PaymentUC, deps.StatementUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/payments", customerHandler.RecordPayment)
	customers.Put("/:id/records/:month", customerHandler.EditRecord)
	customers.Get("/:id/statement", customerHandler.Statement)

	// Listado mensual
	billingGroup := api.Group("/billing", requireAuth, requireSession)
	billingHandler := NewBillingHandler(deps.ReportUC, deps.StatementUC)
	billingGroup.Get("/", billingHandler.MonthView)
	billingGroup.Get("/export", billingHandler.Export)

	// Código de sincronización
	syncGroup := api.Group("/sync", requireAuth, requireSession)
	syncHandler := NewSyncHandler(deps.SyncUC)
	syncGroup.Get("/export", syncHandler.Export)
	syncGroup.Post("/import", syncHandler.Import)
}
