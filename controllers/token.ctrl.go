package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/lib/responses"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/tokens"
)

// TokenController : Token lifecycle controller struct
type TokenController struct {
	svc *service.LndbService
}

func NewTokenController(svc *service.LndbService) *TokenController {
	return &TokenController{svc: svc}
}

type CreateTokenRequestBody struct {
	Scope string `json:"scope" validate:"required"`
}

type CreateTokenResponseBody struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type DeleteTokenRequestBody struct {
	ID string `json:"id" validate:"required"`
}

// CreateToken godoc
// @Summary      Create a new access token
// @Description  Issues a token for the calling account with the requested scope
// @Accept       json
// @Produce      json
// @Tags         Token
// @Param        token  body      CreateTokenRequestBody  True  "Create Token"
// @Success      201    {object}  CreateTokenResponseBody
// @Failure      400    {object}  responses.ErrorResponse
// @Router       /token [post]
func (controller *TokenController) CreateToken(c echo.Context) error {
	account := tokens.AccountFromContext(c)
	var body CreateTokenRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create token request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	token, err := controller.svc.CreateToken(c.Request().Context(), account, common.Scope(body.Scope))
	if err != nil {
		if errors.Is(err, service.ErrInvalidScope) {
			return c.JSON(responses.ScopeEnumError.HttpStatusCode, responses.ScopeEnumError)
		}
		c.Logger().Errorf("Failed to create token account_id:%s error: %v", account.ID, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}

	return c.JSON(http.StatusCreated, &CreateTokenResponseBody{
		ID:    token.ID,
		Token: token.Value,
	})
}

// DeleteToken godoc
// @Summary      Delete an access token
// @Description  Deletes the token with the given id if it belongs to the calling account
// @Accept       json
// @Produce      json
// @Tags         Token
// @Param        token  body  DeleteTokenRequestBody  True  "Delete Token"
// @Success      204
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /token [delete]
func (controller *TokenController) DeleteToken(c echo.Context) error {
	account := tokens.AccountFromContext(c)
	var body DeleteTokenRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load delete token request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	if err := controller.svc.DeleteToken(c.Request().Context(), account, body.ID); err != nil {
		if errors.Is(err, service.ErrTokenNotOwned) {
			return c.JSON(responses.ForbiddenError.HttpStatusCode, responses.ForbiddenError)
		}
		c.Logger().Errorf("Failed to delete token account_id:%s token_id:%s error: %v", account.ID, body.ID, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
