package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Invoice records a requested Lightning payment used to top up an account.
// The secret correlates the provider's webhook callback and is the sole proof
// of settlement authenticity, it must never be serialized to callers.
type Invoice struct {
	bun.BaseModel `bun:"table:invoices"`

	ID         int64        `json:"-" bun:",pk,autoincrement"`
	Hash       string       `json:"hash" bun:",notnull,unique"`
	AccountID  string       `json:"-" bun:"account_id,notnull"`
	Account    *Account     `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	Bolt11     string       `json:"bolt11" bun:",notnull"`
	AmountMsat int64        `json:"amount_msat" bun:",notnull"`
	Secret     string       `json:"-" bun:",notnull,unique"`
	State      string       `json:"state" bun:",notnull,default:'pending'"`
	ExpiresAt  time.Time    `json:"expires" bun:",nullzero"`
	CreatedAt  time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	SettledAt  bun.NullTime `json:"settled_at"`
}
