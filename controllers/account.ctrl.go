package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/lib/responses"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/tokens"
)

// AccountController : Account lifecycle controller struct
type AccountController struct {
	svc *service.LndbService
}

func NewAccountController(svc *service.LndbService) *AccountController {
	return &AccountController{svc: svc}
}

type CreateAccountResponseBody struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// CreateAccount godoc
// @Summary      Create a new account
// @Description  Creates an account with a bootstrap token of scope "all". Anonymous callers create root accounts, authenticated callers create children.
// @Accept       json
// @Produce      json
// @Tags         Account
// @Success      201  {object}  CreateAccountResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /account [post]
func (controller *AccountController) CreateAccount(c echo.Context) error {
	actor := tokens.AccountFromContext(c)

	account, token, err := controller.svc.CreateAccount(c.Request().Context(), actor)
	if err != nil {
		if errors.Is(err, service.ErrAccountNesting) {
			return c.JSON(responses.AccountNestingError.HttpStatusCode, responses.AccountNestingError)
		}
		c.Logger().Errorf("Failed to create account: %v", err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}

	return c.JSON(http.StatusCreated, &CreateAccountResponseBody{
		ID:    account.ID,
		Token: token.Value,
	})
}

// DeleteAccount godoc
// @Summary      Delete your account
// @Description  Removes the account, its children and all their tokens and storage
// @Produce      json
// @Tags         Account
// @Success      204
// @Router       /account [delete]
func (controller *AccountController) DeleteAccount(c echo.Context) error {
	account := tokens.AccountFromContext(c)

	if err := controller.svc.DeleteAccount(c.Request().Context(), account); err != nil {
		c.Logger().Errorf("Failed to delete account account_id:%s error: %v", account.ID, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
