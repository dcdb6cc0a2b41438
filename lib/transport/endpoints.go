package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/controllers"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/tokens"
)

func RegisterEndpoints(svc *service.LndbService, e *echo.Echo, strictRateLimitMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	accountCtrl := controllers.NewAccountController(svc)
	tokenCtrl := controllers.NewTokenController(svc)
	invoiceCtrl := controllers.NewInvoiceController(svc)
	webhookCtrl := controllers.NewWebhookController(svc)
	queryCtrl := controllers.NewQueryController(svc)
	resourceCtrl := controllers.NewResourceController(svc)

	meterMw := CreateMeteringMiddleware(svc)

	e.POST("/account", accountCtrl.CreateAccount,
		tokens.Middleware(svc, common.ScopeAnonymous, common.ScopeAccountCreate), strictRateLimitMw, logMw)
	// any scope may delete its own account
	e.DELETE("/account", accountCtrl.DeleteAccount,
		tokens.Middleware(svc, common.ScopeReadOnly, common.ScopeAccountCreate), logMw)

	e.POST("/token", tokenCtrl.CreateToken, tokens.Middleware(svc), logMw)
	e.DELETE("/token", tokenCtrl.DeleteToken, tokens.Middleware(svc), logMw)

	e.POST("/invoice", invoiceCtrl.AddInvoice, tokens.Middleware(svc), strictRateLimitMw, logMw)
	// settlement callbacks authenticate by secret, not by credential
	e.POST("/webhook", webhookCtrl.Webhook, logMw)

	e.POST("/sql", queryCtrl.Query,
		tokens.Middleware(svc, common.ScopeReadOnly), meterMw, logMw)
	e.POST("/resource/:resource", resourceCtrl.CreateInstance,
		tokens.Middleware(svc), meterMw, logMw)
}
