package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/lib/service"
)

// WebhookController : Settlement callback controller struct
type WebhookController struct {
	svc *service.LndbService
}

func NewWebhookController(svc *service.LndbService) *WebhookController {
	return &WebhookController{svc: svc}
}

type WebhookRequestBody struct {
	Secret string `json:"secret"`
}

// Webhook godoc
// @Summary      Settlement callback from the payment provider
// @Description  Credits the invoice's account exactly once. The secret is the only proof of authenticity; unknown or replayed secrets are acknowledged without effect.
// @Accept       json
// @Produce      json
// @Tags         Invoice
// @Success      200
// @Router       /webhook [post]
func (controller *WebhookController) Webhook(c echo.Context) error {
	var body WebhookRequestBody

	// the callback is always acknowledged, an attacker probing secrets learns
	// nothing from the response
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load webhook request body: %v", err)
		return c.JSON(http.StatusOK, echo.Map{})
	}

	if err := controller.svc.SettleInvoice(c.Request().Context(), body.Secret); err != nil {
		c.Logger().Errorf("Failed to settle invoice: %v", err)
	}
	return c.JSON(http.StatusOK, echo.Map{})
}
