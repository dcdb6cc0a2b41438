package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"error"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Code:           "server_error",
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Code:           "bad_arguments",
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var UnauthorizedError = ErrorResponse{
	Code:           "unauthorized",
	Message:        "Unauthorized",
	HttpStatusCode: 401,
}

var ForbiddenError = ErrorResponse{
	Code:           "forbidden",
	Message:        "Forbidden",
	HttpStatusCode: 403,
}

var AccountNestingError = ErrorResponse{
	Code:           "account_nesting",
	Message:        "Child accounts cannot create child accounts",
	HttpStatusCode: 400,
}

var ScopeEnumError = ErrorResponse{
	Code:           "enum",
	Message:        "Scope must be one of all, all/readonly, account/create",
	HttpStatusCode: 400,
}

var MinimumAmountError = ErrorResponse{
	Code:           "minimum",
	Message:        "Amount must be at least 1000 msats",
	HttpStatusCode: 400,
}

var PaymentRequiredError = ErrorResponse{
	Code:           "payment_required",
	Message:        "Please request an invoice to replenish your account balance",
	HttpStatusCode: 402,
}

var UpstreamError = ErrorResponse{
	Code:           "upstream_error",
	Message:        "The payment provider is unavailable. Please try again later",
	HttpStatusCode: 502,
}

// QueryError wraps a tenant's own query failure. The message is passed
// through verbatim: it is the tenant's query against the tenant's data.
func QueryError(message string) ErrorResponse {
	return ErrorResponse{
		Code:           "query_error",
		Message:        message,
		HttpStatusCode: 400,
	}
}

func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	return he.Code != http.StatusUnauthorized && he.Code != http.StatusForbidden
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("AccountID", c.Get("AccountID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
