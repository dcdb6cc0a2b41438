package tenantdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("widgets"))
	assert.True(t, ValidIdentifier("_private"))
	assert.True(t, ValidIdentifier("Orders2"))
	assert.True(t, ValidIdentifier("a"))

	assert.False(t, ValidIdentifier(""))
	assert.False(t, ValidIdentifier("2fast"))
	assert.False(t, ValidIdentifier("drop table"))
	assert.False(t, ValidIdentifier(`widgets";DROP SCHEMA master;--`))
	assert.False(t, ValidIdentifier("naïve"))
	assert.False(t, ValidIdentifier("with-dash"))
}

func TestSchemaNameIsPrefixed(t *testing.T) {
	a := &Adapter{}
	assert.Equal(t, "tenant_abc123", a.SchemaName("abc123"))
}

func TestDatabasePathStaysInsideDataDir(t *testing.T) {
	a := &Adapter{DataDir: "data"}
	assert.Equal(t, "data/abc123.db", a.DatabasePath("abc123"))
	// path traversal names never reach DatabasePath, they fail the grammar
	assert.False(t, ValidIdentifier("../master"))
}
