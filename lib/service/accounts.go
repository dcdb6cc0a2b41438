package service

import (
	"context"
	"database/sql"

	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/db/models"
	"github.com/uptrace/bun"
)

func (svc *LndbService) FindAccount(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := svc.DB.NewSelect().Model(&account).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount creates a new account with a bootstrap token of scope "all".
// When actor is non-nil the new account becomes its child; an actor that is
// itself a child cannot create accounts (depth is limited to one level).
func (svc *LndbService) CreateAccount(ctx context.Context, actor *models.Account) (account *models.Account, token *models.Token, err error) {
	if actor != nil && actor.HasParent() {
		return nil, nil, ErrAccountNesting
	}

	accountID, err := randomID()
	if err != nil {
		return nil, nil, err
	}
	tokenID, err := randomID()
	if err != nil {
		return nil, nil, err
	}
	tokenValue, err := randomSecret()
	if err != nil {
		return nil, nil, err
	}

	account = &models.Account{ID: accountID}
	if actor != nil {
		account.ParentID = sql.NullString{String: actor.ID, Valid: true}
	}
	token = &models.Token{
		ID:        tokenID,
		AccountID: accountID,
		Value:     tokenValue,
		Scope:     common.ScopeAll,
	}

	// account and its bootstrap token either both exist or neither does
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(account).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(token).Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return account, token, nil
}

// DeleteAccount tears down the account, its children and all their storage.
// Artifact removal is best effort: a tenant that never wrote anything has no
// database file or schema, and one missing child must not abort the rest.
func (svc *LndbService) DeleteAccount(ctx context.Context, account *models.Account) error {
	var children []models.Account
	if err := svc.DB.NewSelect().Model(&children).Where("parent_id = ?", account.ID).Scan(ctx); err != nil {
		return err
	}

	for _, child := range children {
		svc.teardownTenant(ctx, child.ID)
	}
	svc.teardownTenant(ctx, account.ID)

	if _, err := svc.DB.NewDelete().Model((*models.Account)(nil)).Where("parent_id = ?", account.ID).Exec(ctx); err != nil {
		return err
	}
	_, err := svc.DB.NewDelete().Model((*models.Account)(nil)).Where("id = ?", account.ID).Exec(ctx)
	return err
}

func (svc *LndbService) teardownTenant(ctx context.Context, accountID string) {
	if err := svc.TenantDB.RemoveDatabase(accountID); err != nil {
		svc.Logger.Warnf("Failed to remove tenant database file account_id:%s error: %v", accountID, err)
	}
	if err := svc.TenantDB.DropSchema(ctx, accountID); err != nil {
		svc.Logger.Warnf("Failed to drop tenant schema account_id:%s error: %v", accountID, err)
	}
	if _, err := svc.DB.NewDelete().Model((*models.Token)(nil)).Where("account_id = ?", accountID).Exec(ctx); err != nil {
		svc.Logger.Warnf("Failed to delete tokens account_id:%s error: %v", accountID, err)
	}
	if _, err := svc.DB.NewDelete().Model((*models.Invoice)(nil)).Where("account_id = ?", accountID).Exec(ctx); err != nil {
		svc.Logger.Warnf("Failed to delete invoices account_id:%s error: %v", accountID, err)
	}
}
