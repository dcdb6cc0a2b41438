package tenantdb

import (
	"context"
	"database/sql/driver"
	"encoding/json"

	"github.com/uptrace/bun"
)

// sentinelSchema is deliberately nonexistent. The pinned connection's
// search_path is reset to it before the connection goes back to the pool, so
// a reused connection can never target the previous tenant.
const sentinelSchema = "bogus"

func (a *Adapter) SchemaName(accountID string) string {
	return "tenant_" + accountID
}

// DropSchema removes the tenant's relational namespace. A schema that was
// never provisioned is not an error.
func (a *Adapter) DropSchema(ctx context.Context, accountID string) error {
	if !ValidIdentifier(accountID) {
		return ErrInvalidIdentifier
	}
	_, err := a.DB.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+quoteIdent(a.SchemaName(accountID))+" CASCADE")
	return err
}

// withSchema pins one pooled connection to the tenant's schema, runs fn and
// always resets the search_path, error path included.
func (a *Adapter) withSchema(ctx context.Context, accountID string, fn func(conn bun.Conn) error) error {
	if !ValidIdentifier(accountID) {
		return ErrInvalidIdentifier
	}
	schema := quoteIdent(a.SchemaName(accountID))

	conn, err := a.DB.Conn(ctx)
	if err != nil {
		return err
	}
	// The reset runs on its own context: the request context may already be
	// canceled, and a connection still pinned to a tenant schema must never
	// reach the pool. If the reset fails anyway, the connection is marked bad
	// so the pool discards it instead of reusing it.
	defer func() {
		if _, rerr := conn.ExecContext(context.Background(), "SET search_path TO "+quoteIdent(sentinelSchema)); rerr != nil {
			conn.Raw(func(interface{}) error { return driver.ErrBadConn })
		}
		conn.Close()
	}()

	if _, err := conn.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+schema); err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, "SET search_path TO "+schema); err != nil {
		return err
	}
	return fn(conn)
}

// EnsureResource idempotently creates the named document table in the
// tenant's schema.
func (a *Adapter) EnsureResource(ctx context.Context, accountID, resource string) error {
	if !ValidIdentifier(resource) {
		return ErrInvalidIdentifier
	}
	return a.withSchema(ctx, accountID, func(conn bun.Conn) error {
		_, err := conn.ExecContext(ctx,
			"CREATE TABLE IF NOT EXISTS "+quoteIdent(resource)+" (id bigserial PRIMARY KEY, instance jsonb NOT NULL)")
		return err
	})
}

// InsertResource appends a document to the named resource table and returns
// the generated id.
func (a *Adapter) InsertResource(ctx context.Context, accountID, resource string, instance interface{}) (int64, error) {
	if !ValidIdentifier(resource) {
		return 0, ErrInvalidIdentifier
	}
	payload, err := json.Marshal(instance)
	if err != nil {
		return 0, err
	}

	var id int64
	err = a.withSchema(ctx, accountID, func(conn bun.Conn) error {
		return conn.QueryRowContext(ctx,
			"INSERT INTO "+quoteIdent(resource)+" (instance) VALUES (?) RETURNING id",
			string(payload)).Scan(&id)
	})
	return id, err
}
