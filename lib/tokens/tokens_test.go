package tokens

import (
	"testing"

	"github.com/lndb/lndb.go/common"
	"github.com/stretchr/testify/assert"
)

func TestParseBearer(t *testing.T) {
	assert.Equal(t, "abc123", ParseBearer("Bearer abc123"))
	assert.Equal(t, "abc123", ParseBearer("bearer abc123"))
	assert.Equal(t, "abc123", ParseBearer("BEARER   abc123  "))
	assert.Equal(t, "abc123", ParseBearer("  bEaReR\tabc123"))
	assert.Equal(t, "abc123", ParseBearer("abc123"))
	assert.Equal(t, "", ParseBearer("Bearer "))
}

func TestAllScopeSatisfiesEveryGate(t *testing.T) {
	assert.True(t, common.ScopeAll.Satisfies(common.ScopeReadOnly))
	assert.True(t, common.ScopeAll.Satisfies(common.ScopeAccountCreate))
	assert.True(t, common.ScopeAll.Satisfies(common.ScopeAnonymous))
	assert.True(t, common.ScopeAll.Satisfies())
}

func TestNarrowScopesSatisfyOnlyTheirGate(t *testing.T) {
	assert.True(t, common.ScopeReadOnly.Satisfies(common.ScopeReadOnly))
	assert.False(t, common.ScopeReadOnly.Satisfies(common.ScopeAccountCreate))
	assert.False(t, common.ScopeReadOnly.Satisfies())

	assert.True(t, common.ScopeAccountCreate.Satisfies(common.ScopeAnonymous, common.ScopeAccountCreate))
	assert.False(t, common.ScopeAccountCreate.Satisfies(common.ScopeReadOnly))
}

func TestScopeValidity(t *testing.T) {
	assert.True(t, common.ScopeAll.Valid())
	assert.True(t, common.ScopeReadOnly.Valid())
	assert.True(t, common.ScopeAccountCreate.Valid())
	assert.False(t, common.ScopeAnonymous.Valid())
	assert.False(t, common.Scope("admin").Valid())
}
