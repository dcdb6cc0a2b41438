package service

import (
	"context"

	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/db/models"
)

func (svc *LndbService) FindTokenByValue(ctx context.Context, value string) (*models.Token, error) {
	var token models.Token
	err := svc.DB.NewSelect().Model(&token).Where("value = ?", value).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (svc *LndbService) CreateToken(ctx context.Context, account *models.Account, scope common.Scope) (*models.Token, error) {
	if !scope.Valid() {
		return nil, ErrInvalidScope
	}
	tokenID, err := randomID()
	if err != nil {
		return nil, err
	}
	value, err := randomSecret()
	if err != nil {
		return nil, err
	}
	token := &models.Token{
		ID:        tokenID,
		AccountID: account.ID,
		Value:     value,
		Scope:     scope,
	}
	if _, err := svc.DB.NewInsert().Model(token).Exec(ctx); err != nil {
		return nil, err
	}
	return token, nil
}

// DeleteToken deletes the requested token id, not the credential that
// authenticated the call. The ownership check is part of the delete predicate
// so a foreign id deletes nothing.
func (svc *LndbService) DeleteToken(ctx context.Context, account *models.Account, tokenID string) error {
	res, err := svc.DB.NewDelete().Model((*models.Token)(nil)).
		Where("id = ? AND account_id = ?", tokenID, account.ID).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTokenNotOwned
	}
	return nil
}
