package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	"github.com/jhoicas/salestax-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Calculator *billing.CalculatorUseCase
	Invoices   *billing.GenerateInvoiceUseCase // nil si no hay almacén de pagos configurado
	Metrics    nethttp.Handler                 // nil desactiva /metrics
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret)

	// Tax (público salvo exenciones)
	taxGroup := api.Group("/tax")
	taxHandler := NewTaxHandler(deps.Calculator)
	taxGroup.Post("/calculate", taxHandler.Calculate)
	taxGroup.Post("/reverse", taxHandler.Reverse)
	taxGroup.Get("/rates", taxHandler.ListRates)
	taxGroup.Get("/rates/:code", taxHandler.GetRates)
	taxGroup.Post("/validate", taxHandler.ValidateTaxNumber)
	taxGroup.Get("/exemptions/:businessId", auth, RequireScope(jwt.ScopeExemptionsRead), taxHandler.CheckExemption)

	// Invoices (protegido)
	if deps.Invoices != nil {
		invoiceHandler := NewInvoiceHandler(deps.Invoices)
		api.Get("/invoices/:paymentId", auth, RequireScope(jwt.ScopeInvoicesRead), invoiceHandler.GetByPayment)
	}
}
