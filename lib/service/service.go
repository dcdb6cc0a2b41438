package service

import (
	"errors"

	"github.com/lndb/lndb.go/ibex"
	"github.com/lndb/lndb.go/tenantdb"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type LndbService struct {
	Config   *Config
	DB       *bun.DB
	Logger   *lecho.Logger
	Ibex     ibex.InvoiceClient
	TenantDB *tenantdb.Adapter
}

var (
	ErrAccountNesting = errors.New("child accounts cannot create child accounts")
	ErrInvalidScope   = errors.New("invalid token scope")
	ErrTokenNotOwned  = errors.New("token does not belong to this account")
	ErrAmountTooLow   = errors.New("amount must be at least 1000 msat")
	ErrUpstream       = errors.New("payment provider error")
)
