package tokens

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/db/models"
	"github.com/lndb/lndb.go/lib/responses"
	"github.com/lndb/lndb.go/lib/service"
)

const (
	contextTokenKey   = "Token"
	contextAccountKey = "Account"

	bearerMarker = "bearer"
)

// ParseBearer extracts the credential following a case-insensitive "bearer"
// marker, with surrounding whitespace removed. A header without the marker is
// treated as the bare credential.
func ParseBearer(header string) string {
	lower := strings.ToLower(header)
	if idx := strings.LastIndex(lower, bearerMarker); idx >= 0 {
		header = header[idx+len(bearerMarker):]
	}
	return strings.TrimSpace(header)
}

// Middleware resolves the bearer credential and gates the route on the
// allowed scopes. A non-empty credential that does not resolve fails the call
// outright instead of downgrading to anonymous. An absent credential is
// anonymous and passes only if the route allows the anonymous pseudo-scope.
func Middleware(svc *service.LndbService, allowed ...common.Scope) echo.MiddlewareFunc {
	anonymousAllowed := false
	for _, scope := range allowed {
		if scope == common.ScopeAnonymous {
			anonymousAllowed = true
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				if !anonymousAllowed {
					return c.JSON(responses.UnauthorizedError.HttpStatusCode, responses.UnauthorizedError)
				}
				return next(c)
			}

			ctx := c.Request().Context()
			token, err := svc.FindTokenByValue(ctx, ParseBearer(header))
			if err != nil {
				return c.JSON(responses.UnauthorizedError.HttpStatusCode, responses.UnauthorizedError)
			}
			if !token.Scope.Satisfies(allowed...) {
				return c.JSON(responses.ForbiddenError.HttpStatusCode, responses.ForbiddenError)
			}

			account, err := svc.FindAccount(ctx, token.AccountID)
			if err != nil {
				c.Logger().Errorf("Failed to load account for token token_id:%s error: %v", token.ID, err)
				return c.JSON(responses.GeneralServerError.HttpStatusCode, responses.GeneralServerError)
			}

			c.Set(contextTokenKey, token)
			c.Set(contextAccountKey, account)
			c.Set("AccountID", account.ID)
			c.Response().Header().Set(common.BalanceHeader, strconv.FormatInt(account.Balance, 10))

			return next(c)
		}
	}
}

// AccountFromContext returns the resolved account or nil for anonymous calls.
func AccountFromContext(c echo.Context) *models.Account {
	account, _ := c.Get(contextAccountKey).(*models.Account)
	return account
}

func TokenFromContext(c echo.Context) *models.Token {
	token, _ := c.Get(contextTokenKey).(*models.Token)
	return token
}
