package integration_tests

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/lndb/lndb.go/common"
	"github.com/lndb/lndb.go/db/models"
	"github.com/lndb/lndb.go/lib/service"
	"github.com/lndb/lndb.go/lib/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MeterTestSuite struct {
	TestSuite
	service *service.LndbService
}

func (suite *MeterTestSuite) SetupSuite() {
	svc, err := LndbTestServiceInit(&mockIbexClient{})
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = newTestEcho(svc)
}

func (suite *MeterTestSuite) TearDownTest() {
	assert.NoError(suite.T(), clearTables(suite.service))
}

func (suite *MeterTestSuite) setBalance(accountID string, balance int64) {
	_, err := suite.service.DB.NewUpdate().
		Model((*models.Account)(nil)).
		Set("balance = ?", balance).
		Where("id = ?", accountID).
		Exec(context.Background())
	suite.Require().NoError(err)
}

func (suite *MeterTestSuite) balance(accountID string) int64 {
	account, err := suite.service.FindAccount(context.Background(), accountID)
	suite.Require().NoError(err)
	return account.Balance
}

func (suite *MeterTestSuite) TestConcurrentDebitsDoNotLoseUpdates() {
	accountID, _ := suite.createAccount("")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.DebitUsage(context.Background(), accountID, 5)
			assert.NoError(suite.T(), err)
		}()
	}
	wg.Wait()

	assert.Equal(suite.T(), int64(-10), suite.balance(accountID))
}

func (suite *MeterTestSuite) TestQueryIsBilledAndReportsBalance() {
	accountID, token := suite.createAccount("")

	rec := suite.request(http.MethodPost, "/sql", token, map[string]interface{}{
		"query": "CREATE TABLE notes (id integer primary key, body text)",
	})
	suite.Require().Equal(http.StatusOK, rec.Code)

	rec = suite.request(http.MethodPost, "/sql", token, map[string]interface{}{
		"query": "INSERT INTO notes (body) VALUES (?)",
		"args":  []string{"hello"},
	})
	suite.Require().Equal(http.StatusOK, rec.Code)

	rec = suite.request(http.MethodPost, "/sql", token, map[string]interface{}{
		"query": "SELECT body FROM notes",
	})
	suite.Require().Equal(http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "hello")

	// three billed calls drove the balance below zero
	balance := suite.balance(accountID)
	assert.Less(suite.T(), balance, int64(0))

	reported, err := strconv.ParseInt(rec.Header().Get(common.BalanceHeader), 10, 64)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), balance, reported)
}

func (suite *MeterTestSuite) TestFailedQueryIsStillBilled() {
	accountID, token := suite.createAccount("")

	rec := suite.request(http.MethodPost, "/sql", token, map[string]interface{}{
		"query": "SELECT * FROM no_such_table",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "no_such_table")

	assert.Less(suite.T(), suite.balance(accountID), int64(0))
}

func (suite *MeterTestSuite) TestBalanceFloorBlocksAdmission() {
	accountID, token := suite.createAccount("")
	suite.setBalance(accountID, -1001)

	rec := suite.request(http.MethodPost, "/sql", token, map[string]interface{}{
		"query": "SELECT 1",
	})
	assert.Equal(suite.T(), http.StatusPaymentRequired, rec.Code)
	// a refused call is not billed
	assert.Equal(suite.T(), int64(-1001), suite.balance(accountID))
}

func (suite *MeterTestSuite) TestBalanceFloorAdmitsExactlyAtFloor() {
	accountID, token := suite.createAccount("")
	suite.setBalance(accountID, -1000)

	rec := suite.request(http.MethodPost, "/sql", token, map[string]interface{}{
		"query": "SELECT 1",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Less(suite.T(), suite.balance(accountID), int64(-1000))
}

func (suite *MeterTestSuite) TestDisconnectedClientIsStillBilled() {
	accountID, _ := suite.createAccount("")
	account, err := suite.service.FindAccount(context.Background(), accountID)
	suite.Require().NoError(err)

	// the client went away before the debit runs
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/sql", strings.NewReader(`{"query":"SELECT 1"}`)).WithContext(ctx)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.Set("Account", account)

	handler := transport.CreateMeteringMiddleware(suite.service)(func(c echo.Context) error {
		return c.String(http.StatusOK, "done")
	})
	suite.Require().NoError(handler(c))

	balance := suite.balance(accountID)
	assert.Less(suite.T(), balance, int64(0))

	reported, err := strconv.ParseInt(rec.Header().Get(common.BalanceHeader), 10, 64)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), balance, reported)
}

func (suite *MeterTestSuite) TestResourceInstanceRoundTrip() {
	accountID, token := suite.createAccount("")

	rec := suite.request(http.MethodPost, "/resource/articles", token, map[string]interface{}{
		"instance": map[string]interface{}{"title": "metered"},
	})
	suite.Require().Equal(http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "id")

	assert.Less(suite.T(), suite.balance(accountID), int64(0))
}

func (suite *MeterTestSuite) TestResourceNameIsValidated() {
	_, token := suite.createAccount("")

	rec := suite.request(http.MethodPost, "/resource/1starts-with-digit", token, map[string]interface{}{
		"instance": map[string]interface{}{"x": 1},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func TestMeterSuite(t *testing.T) {
	suite.Run(t, new(MeterTestSuite))
}
