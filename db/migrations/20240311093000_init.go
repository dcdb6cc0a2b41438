package migrations

import (
	"context"

	"github.com/lndb/lndb.go/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on a fresh db
make sure that when you add/remove columns in subsequent migrations
IfNotExists/IfExists is used, otherwise it's going to result in errors. */
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*models.Account)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Token)(nil)).
			ForeignKey(`("account_id") REFERENCES "accounts" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Invoice)(nil)).
			ForeignKey(`("account_id") REFERENCES "accounts" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*models.Token)(nil)).
			Index("tokens_value_idx").Column("value").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*models.Invoice)(nil)).
			Index("invoices_secret_idx").Column("secret").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().Model((*models.Account)(nil)).
			Index("accounts_parent_id_idx").Column("parent_id").Exec(ctx); err != nil {
			return err
		}
		return nil
	}, nil)
}
