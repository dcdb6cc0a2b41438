package service

import (
	"context"
	"math"
	"time"

	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/db/models"
)

// CostMsat prices a billed call: 1 msat per 100ms of runtime plus 1 msat per
// kilobyte of payload in either direction, rounded up once over the sum.
func CostMsat(elapsed time.Duration, requestBytes, responseBytes int64) int64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	return int64(math.Ceil(ms/100 + float64(requestBytes)/1024 + float64(responseBytes)/1024))
}

// BelowBalanceFloor reports whether the account is too far in debt for
// another billed call. The floor only gates admission: a call admitted at the
// floor may still push the balance further down.
func BelowBalanceFloor(account *models.Account) bool {
	return account.Balance < common.BalanceFloorMsat
}

// DebitUsage charges the account and returns the post-debit balance. The
// decrement happens store-side so concurrent calls against the same account
// cannot lose updates.
func (svc *LndbService) DebitUsage(ctx context.Context, accountID string, costMsat int64) (int64, error) {
	var balance int64
	_, err := svc.DB.NewUpdate().Model((*models.Account)(nil)).
		Set("balance = balance - ?", costMsat).
		Where("id = ?", accountID).
		Returning("balance").
		Exec(ctx, &balance)
	return balance, err
}
