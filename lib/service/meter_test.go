package service

import (
	"testing"
	"time"

	"github.com/lndb/lndb.go/db/models"
	"github.com/stretchr/testify/assert"
)

func TestCostMsat(t *testing.T) {
	// 250ms runtime, 2KiB request, 1KiB response: ceil(2.5 + 2 + 1) = 6
	assert.Equal(t, int64(6), CostMsat(250*time.Millisecond, 2048, 1024))
}

func TestCostMsatUsesOneCeilingOverTheSum(t *testing.T) {
	// 0.1 + 0.0977 + 0.0977 rounds to 1, not to 3
	assert.Equal(t, int64(1), CostMsat(10*time.Millisecond, 100, 100))
}

func TestCostMsatExactSum(t *testing.T) {
	// 0.5 + 1 + 1.5 needs no rounding
	assert.Equal(t, int64(3), CostMsat(50*time.Millisecond, 1024, 1536))
}

func TestCostMsatFreeCall(t *testing.T) {
	assert.Equal(t, int64(0), CostMsat(0, 0, 0))
}

func TestBalanceFloor(t *testing.T) {
	assert.False(t, BelowBalanceFloor(&models.Account{Balance: 1000}))
	assert.False(t, BelowBalanceFloor(&models.Account{Balance: 0}))
	// exactly at the floor still admits one more billed attempt
	assert.False(t, BelowBalanceFloor(&models.Account{Balance: -1000}))
	assert.True(t, BelowBalanceFloor(&models.Account{Balance: -1001}))
}
