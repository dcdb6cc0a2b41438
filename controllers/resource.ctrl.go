package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/lib/responses"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/tokens"
	"github.com/lndb/lndb.go/tenantdb"
)

// ResourceController : Resource instance controller struct
type ResourceController struct {
	svc *service.LndbService
}

func NewResourceController(svc *service.LndbService) *ResourceController {
	return &ResourceController{svc: svc}
}

type CreateInstanceRequestBody struct {
	Instance map[string]interface{} `json:"instance" validate:"required"`
}

type CreateInstanceResponseBody struct {
	ID int64 `json:"id"`
}

// CreateInstance godoc
// @Summary      Create a resource instance
// @Description  Appends a document to the named resource table in the account's namespace, creating the table on first write
// @Accept       json
// @Produce      json
// @Tags         Resource
// @Param        resource  path      string                     true  "Resource name"
// @Param        instance  body      CreateInstanceRequestBody  True  "Instance data"
// @Success      200       {object}  CreateInstanceResponseBody
// @Failure      400       {object}  responses.ErrorResponse
// @Router       /resource/{resource} [post]
func (controller *ResourceController) CreateInstance(c echo.Context) error {
	account := tokens.AccountFromContext(c)
	resource := c.Param("resource")
	var body CreateInstanceRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load resource request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	ctx := c.Request().Context()
	if err := controller.svc.TenantDB.EnsureResource(ctx, account.ID, resource); err != nil {
		if errors.Is(err, tenantdb.ErrInvalidIdentifier) {
			return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
		}
		c.Logger().Errorf("Failed to ensure resource account_id:%s resource:%s error: %v", account.ID, resource, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}

	id, err := controller.svc.TenantDB.InsertResource(ctx, account.ID, resource, body.Instance)
	if err != nil {
		c.Logger().Errorf("Failed to insert resource account_id:%s resource:%s error: %v", account.ID, resource, err)
		return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &CreateInstanceResponseBody{ID: id})
}
