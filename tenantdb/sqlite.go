package tenantdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func (a *Adapter) DatabasePath(accountID string) string {
	return filepath.Join(a.DataDir, accountID+".db")
}

// RemoveDatabase deletes the tenant's database file. A file that was never
// created is not an error.
func (a *Adapter) RemoveDatabase(accountID string) error {
	if !ValidIdentifier(accountID) {
		return ErrInvalidIdentifier
	}
	err := os.Remove(a.DatabasePath(accountID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Query executes a tenant-supplied query against the tenant's own database
// file. A fresh handle is opened per call and closed on every exit path so
// nothing leaks into subsequent requests.
func (a *Adapter) Query(ctx context.Context, accountID, query string, args ...interface{}) ([]map[string]interface{}, error) {
	if !ValidIdentifier(accountID) {
		return nil, ErrInvalidIdentifier
	}
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+a.DatabasePath(accountID))
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	data := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
			} else {
				row[column] = values[i]
			}
		}
		data = append(data, row)
	}
	return data, rows.Err()
}
