package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	"github.com/jhoicas/salestax-api/internal/application/dto"
)

// InvoiceHandler factura tributaria a partir de un pago liquidado (protegido).
type InvoiceHandler struct {
	uc *billing.GenerateInvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.GenerateInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// GetByPayment genera la factura del pago indicado.
// @Summary      Factura de un pago
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        paymentId path string true "ID del pago"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/invoices/{paymentId} [get]
func (h *InvoiceHandler) GetByPayment(c *fiber.Ctx) error {
	inv, err := h.uc.GenerateInvoice(c.Context(), c.Params("paymentId"))
	if err != nil {
		return respondError(c, err, "pago no encontrado")
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}
