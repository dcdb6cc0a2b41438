package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/lib/responses"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/tokens"
)

// QueryController : Raw tenant query controller struct
type QueryController struct {
	svc *service.LndbService
}

func NewQueryController(svc *service.LndbService) *QueryController {
	return &QueryController{svc: svc}
}

type QueryRequestBody struct {
	Query string        `json:"query" validate:"required"`
	Args  []interface{} `json:"args"`
}

type QueryResponseBody struct {
	Data []map[string]interface{} `json:"data"`
}

// Query godoc
// @Summary      Execute a query against your database
// @Description  Runs a raw query against the calling account's own database. Billed per runtime and payload.
// @Accept       json
// @Produce      json
// @Tags         Query
// @Param        query  body      QueryRequestBody  True  "Query"
// @Success      200    {object}  QueryResponseBody
// @Failure      400    {object}  responses.ErrorResponse
// @Router       /sql [post]
func (controller *QueryController) Query(c echo.Context) error {
	account := tokens.AccountFromContext(c)
	var body QueryRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load query request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	data, err := controller.svc.TenantDB.Query(c.Request().Context(), account.ID, body.Query, body.Args...)
	if err != nil {
		// the tenant's own query against the tenant's own data, the engine
		// message goes back verbatim
		queryErr := responses.QueryError(err.Error())
		return c.JSON(queryErr.HttpStatusCode, queryErr)
	}

	return c.JSON(http.StatusOK, &QueryResponseBody{Data: data})
}
