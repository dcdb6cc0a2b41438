package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/lib/responses"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/tokens"
)

// bufferedResponse holds back status and body so the post-debit balance can
// still be added to the headers after the handler has run.
type bufferedResponse struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) flush() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	b.ResponseWriter.WriteHeader(b.status)
	_, err := b.ResponseWriter.Write(b.body.Bytes())
	return err
}

// CreateMeteringMiddleware bills the wrapped handler: admission is gated on
// the balance floor, then runtime and payload sizes are charged against the
// account whether or not the handler reported a client error, since the work
// was done either way.
func CreateMeteringMiddleware(svc *service.LndbService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account := tokens.AccountFromContext(c)
			if account == nil {
				return c.JSON(responses.UnauthorizedError.HttpStatusCode, responses.UnauthorizedError)
			}
			if service.BelowBalanceFloor(account) {
				return c.JSON(responses.PaymentRequiredError.HttpStatusCode, responses.PaymentRequiredError)
			}

			var requestBytes int64
			if c.Request().Body != nil {
				body, err := io.ReadAll(c.Request().Body)
				if err != nil {
					return err
				}
				requestBytes = int64(len(body))
				c.Request().Body = io.NopCloser(bytes.NewReader(body))
			}

			buf := &bufferedResponse{ResponseWriter: c.Response().Writer}
			c.Response().Writer = buf

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)
			if err != nil {
				// client-visible handler errors are still billed
				c.Error(err)
			}

			cost := service.CostMsat(elapsed, requestBytes, int64(buf.body.Len()))
			// the debit runs detached from the request context: a client that
			// disconnects after the handler ran still consumed the resources
			balance, err := svc.DebitUsage(context.Background(), account.ID, cost)
			if err != nil {
				svc.Logger.Errorf("Failed to debit usage account_id:%s cost:%d error: %v", account.ID, cost, err)
				balance = account.Balance - cost
			}
			c.Response().Header().Set(common.BalanceHeader, strconv.FormatInt(balance, 10))

			return buf.flush()
		}
	}
}
