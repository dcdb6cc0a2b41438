package models

import (
	"time"

	"github.com/lndb/lndb.go/common"
	"github.com/uptrace/bun"
)

// Token is a bearer credential bound to one account and one scope.
type Token struct {
	bun.BaseModel `bun:"table:tokens"`

	ID        string       `json:"id" bun:",pk"`
	AccountID string       `json:"-" bun:"account_id,notnull"`
	Account   *Account     `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	Value     string       `json:"-" bun:",notnull,unique"`
	Scope     common.Scope `json:"scope" bun:",notnull"`
	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
