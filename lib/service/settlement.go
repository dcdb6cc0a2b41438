package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/db/models"
	"github.com/uptrace/bun"
)

// SettleInvoice marks the invoice matching secret as settled and credits the
// owning account. Unknown secrets are ignored: the webhook is unauthenticated
// and an unknown or replayed secret is not proof of payment. The state flip is
// conditional on the prior state and shares a transaction with the credit, so
// duplicate deliveries credit at most once.
func (svc *LndbService) SettleInvoice(ctx context.Context, secret string) error {
	var invoice models.Invoice
	err := svc.DB.NewSelect().Model(&invoice).Where("secret = ?", secret).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			svc.Logger.Infof("Ignoring webhook with unknown secret")
			return nil
		}
		return err
	}

	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model((*models.Invoice)(nil)).
			Set("state = ?", common.InvoiceStateSettled).
			Set("settled_at = ?", time.Now()).
			Where("secret = ? AND state = ?", secret, common.InvoiceStatePending).
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			// already settled, nothing to credit
			return nil
		}
		_, err = tx.NewUpdate().Model((*models.Account)(nil)).
			Set("balance = balance + ?", invoice.AmountMsat).
			Where("id = ?", invoice.AccountID).
			Exec(ctx)
		return err
	})
}
