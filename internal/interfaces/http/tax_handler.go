package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	"github.com/jhoicas/salestax-api/internal/application/dto"
)

// TaxHandler maneja las peticiones HTTP del motor de impuestos.
type TaxHandler struct {
	uc *billing.CalculatorUseCase
}

// NewTaxHandler construye el handler.
func NewTaxHandler(uc *billing.CalculatorUseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

// Calculate calcula el desglose de impuestos de un subtotal.
// @Summary      Calcular impuestos
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        body body dto.CalculateRequest true "Monto y jurisdicción"
// @Success      200 {object} dto.BreakdownResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/tax/calculate [post]
func (h *TaxHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	b, err := h.uc.Calculate(c.Context(), *in.Amount, in.Jurisdiction, in.BusinessID, in.ClaimedIndigenous)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.NewBreakdownResponse(b))
}

// Reverse extrae subtotal e impuestos de un total con impuestos incluidos.
// @Summary      Cálculo inverso
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        body body dto.ReverseRequest true "Total y jurisdicción"
// @Success      200 {object} dto.BreakdownResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/tax/reverse [post]
func (h *TaxHandler) Reverse(c *fiber.Ctx) error {
	var in dto.ReverseRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	b, err := h.uc.ReverseCalculate(c.Context(), *in.Total, in.Jurisdiction)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.NewBreakdownResponse(b))
}

// ListRates lista todas las jurisdicciones.
// GET /api/tax/rates
func (h *TaxHandler) ListRates(c *fiber.Ctx) error {
	list := h.uc.ListRates()
	out := make([]dto.RatesResponse, 0, len(list))
	for _, j := range list {
		out = append(out, dto.NewRatesResponse(j))
	}
	return c.JSON(out)
}

// GetRates tasas de una jurisdicción; un código desconocido devuelve la jurisdicción por defecto.
// GET /api/tax/rates/:code
func (h *TaxHandler) GetRates(c *fiber.Ctx) error {
	return c.JSON(dto.NewRatesResponse(h.uc.GetRates(c.Params("code"))))
}

// ValidateTaxNumber valida el formato de un número tributario.
// POST /api/tax/validate
func (h *TaxHandler) ValidateTaxNumber(c *fiber.Ctx) error {
	var in dto.ValidateTaxNumberRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Category = strings.ToUpper(strings.TrimSpace(in.Category))
	if err := validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	return c.JSON(dto.ValidateTaxNumberResponse{
		Value:    in.Value,
		Category: in.Category,
		Valid:    h.uc.ValidateTaxNumber(in.Value, in.Category),
	})
}

// CheckExemption estado de exención de una empresa (protegido).
// GET /api/tax/exemptions/:businessId?claimed_indigenous=true
func (h *TaxHandler) CheckExemption(c *fiber.Ctx) error {
	businessID := strings.TrimSpace(c.Params("businessId"))
	if businessID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "businessId requerido"})
	}
	res := h.uc.CheckExemption(c.Context(), businessID, c.QueryBool("claimed_indigenous"))
	return c.JSON(dto.ExemptionResponse{
		BusinessID: businessID,
		IsExempt:   res.Record.IsExempt,
		Reason:     res.Record.Reason,
		Verified:   res.Verified,
		Source:     string(res.Source),
	})
}
