package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/lib/responses"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/tokens"
)

// InvoiceController : Invoice request controller struct
type InvoiceController struct {
	svc *service.LndbService
}

func NewInvoiceController(svc *service.LndbService) *InvoiceController {
	return &InvoiceController{svc: svc}
}

type AddInvoiceRequestBody struct {
	AmountMsat int64 `json:"amount_msat" validate:"required"`
}

type AddInvoiceResponseBody struct {
	Hash    string    `json:"hash"`
	Bolt11  string    `json:"bolt11"`
	Expires time.Time `json:"expires"`
}

// AddInvoice godoc
// @Summary      Request a lightning invoice to pay for usage
// @Description  Returns a bolt11 invoice that tops up the account balance on settlement
// @Accept       json
// @Produce      json
// @Tags         Invoice
// @Param        invoice  body      AddInvoiceRequestBody  True  "Add Invoice"
// @Success      201      {object}  AddInvoiceResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /invoice [post]
func (controller *InvoiceController) AddInvoice(c echo.Context) error {
	account := tokens.AccountFromContext(c)
	var body AddInvoiceRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load invoice request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	c.Logger().Infof("Requesting invoice: account_id:%s amount_msat:%d", account.ID, body.AmountMsat)

	invoice, err := controller.svc.RequestInvoice(c.Request().Context(), account, body.AmountMsat)
	if err != nil {
		if errors.Is(err, service.ErrAmountTooLow) {
			return c.JSON(responses.MinimumAmountError.HttpStatusCode, responses.MinimumAmountError)
		}
		if errors.Is(err, service.ErrUpstream) {
			c.Logger().Errorf("Payment provider error account_id:%s error: %v", account.ID, err)
			return c.JSON(responses.UpstreamError.HttpStatusCode, responses.UpstreamError)
		}
		c.Logger().Errorf("Failed to request invoice account_id:%s error: %v", account.ID, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}

	return c.JSON(http.StatusCreated, &AddInvoiceResponseBody{
		Hash:    invoice.Hash,
		Bolt11:  invoice.Bolt11,
		Expires: invoice.ExpiresAt,
	})
}
