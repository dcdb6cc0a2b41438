package service

import (
	"context"
	"fmt"

	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/db/models"
)

// RequestInvoice asks the payment provider for a bolt11 invoice and persists
// it in pending state. The webhook secret is generated here and shared only
// with the provider; it is never returned to the caller.
func (svc *LndbService) RequestInvoice(ctx context.Context, account *models.Account, amountMsat int64) (*models.Invoice, error) {
	if amountMsat < common.MinInvoiceAmountMsat {
		return nil, ErrAmountTooLow
	}

	secret, err := randomSecret()
	if err != nil {
		return nil, err
	}

	providerInvoice, err := svc.Ibex.CreateInvoiceWithWebhook(ctx, amountMsat, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	invoice := &models.Invoice{
		Hash:       providerInvoice.Hash,
		AccountID:  account.ID,
		Bolt11:     providerInvoice.Bolt11,
		AmountMsat: amountMsat,
		Secret:     secret,
		State:      common.InvoiceStatePending,
		ExpiresAt:  providerInvoice.Expiry(),
	}
	if _, err := svc.DB.NewInsert().Model(invoice).Exec(ctx); err != nil {
		return nil, err
	}
	return invoice, nil
}
