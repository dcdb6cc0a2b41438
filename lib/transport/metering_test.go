package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lndb/lndb.go/common"
	"github.com/stretchr/testify/assert"
)

func TestBufferedResponseHoldsBackBodyUntilFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	buf := &bufferedResponse{ResponseWriter: rec}

	buf.WriteHeader(http.StatusCreated)
	_, err := buf.Write([]byte(`{"ok":true}`))
	assert.NoError(t, err)

	// nothing reached the underlying writer yet, headers can still change
	assert.Empty(t, rec.Body.String())
	buf.Header().Set(common.BalanceHeader, "-6")

	assert.NoError(t, buf.flush())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "-6", rec.Header().Get(common.BalanceHeader))
}

func TestBufferedResponseDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	buf := &bufferedResponse{ResponseWriter: rec}

	_, err := buf.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, buf.flush())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
}

func TestBufferedResponseKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	buf := &bufferedResponse{ResponseWriter: rec}

	buf.WriteHeader(http.StatusPaymentRequired)
	buf.WriteHeader(http.StatusOK)
	assert.NoError(t, buf.flush())

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}
