package models

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// Account is the billing-and-storage tenant unit. An account may sit one
// level below a parent account; a child can never have children of its own.
type Account struct {
	bun.BaseModel `bun:"table:accounts"`

	ID        string         `json:"id" bun:",pk"`
	Balance   int64          `json:"balance" bun:",notnull,default:0"`
	ParentID  sql.NullString `json:"-" bun:"parent_id,nullzero"`
	CreatedAt time.Time      `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (a *Account) HasParent() bool {
	return a.ParentID.Valid
}
