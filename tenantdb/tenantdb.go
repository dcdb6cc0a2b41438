package tenantdb

import (
	"errors"
	"regexp"

	"github.com/uptrace/bun"
)

// Adapter gives every account an isolated storage namespace: a dedicated
// sqlite file for raw tenant queries and a dedicated schema on the shared
// Postgres for resource tables.
type Adapter struct {
	DB      *bun.DB
	DataDir string
}

func NewAdapter(db *bun.DB, dataDir string) *Adapter {
	return &Adapter{DB: db, DataDir: dataDir}
}

var ErrInvalidIdentifier = errors.New("invalid identifier")

// Resource names and account ids end up inside dynamically built statements,
// so they are held to a strict identifier grammar instead of being escaped.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// quoteIdent wraps an already validated identifier for interpolation.
func quoteIdent(name string) string {
	return `"` + name + `"`
}
