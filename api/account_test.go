package api

import (
	"net/http"
	"testing"

	"ledgerboard/aggregator"
	"ledgerboard/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountRouter(f *fixture) *gin.Engine {
	h := NewAccountHandler(f.st)
	router := gin.New()
	router.GET("/accounts", h.List)
	router.GET("/accounts/:id", h.Get)
	router.POST("/accounts", h.Create)
	router.PUT("/accounts/:id", h.Update)
	router.DELETE("/accounts/:id", h.Delete)
	router.GET("/accounts/:id/balance", h.Balance)
	router.GET("/balance/total", h.TotalBalance)
	return router
}

func TestAccountHandler_ListWithBalances(t *testing.T) {
	f := newFixture(t)
	w := doJSON(accountRouter(f), http.MethodGet, "/accounts", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list []aggregator.AccountSummary
	decodeData(t, w, &list)
	require.Len(t, list, 2)
	// 1000 + 3000 - 120 - 300
	assert.Equal(t, "3580", list[0].Balance.String())
	// 200 - 80 + 300
	assert.Equal(t, "420", list[1].Balance.String())
}

func TestAccountHandler_Balance(t *testing.T) {
	f := newFixture(t)
	router := accountRouter(f)

	w := doJSON(router, http.MethodGet, "/accounts/"+f.cash.ID+"/balance", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		InitialBalance decimal.Decimal `json:"initial_balance"`
		Change         decimal.Decimal `json:"change"`
		Balance        decimal.Decimal `json:"balance"`
	}
	decodeData(t, w, &body)
	assert.Equal(t, "200", body.InitialBalance.String())
	assert.Equal(t, "220", body.Change.String())
	assert.Equal(t, "420", body.Balance.String())

	w = doJSON(router, http.MethodGet, "/accounts/missing/balance", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccountHandler_TotalBalance(t *testing.T) {
	f := newFixture(t)
	w := doJSON(accountRouter(f), http.MethodGet, "/balance/total", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalBalance decimal.Decimal `json:"total_balance"`
		AccountCount int             `json:"account_count"`
	}
	decodeData(t, w, &body)
	// 转账在总余额中相互抵消
	assert.Equal(t, "4000", body.TotalBalance.String())
	assert.Equal(t, 2, body.AccountCount)
}

func TestAccountHandler_CreateUpdateDelete(t *testing.T) {
	f := newFixture(t)
	router := accountRouter(f)

	w := doJSON(router, http.MethodPost, "/accounts", gin.H{"name": "Savings", "type": "bank", "initial_balance": "10000"})
	assert.Equal(t, http.StatusOK, w.Code)
	var created models.Account
	decodeData(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.DefaultCurrency, created.Currency)

	w = doJSON(router, http.MethodPut, "/accounts/"+created.ID, gin.H{"name": "Emergency Fund", "type": "bank", "initial_balance": 12000})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Emergency Fund", f.st.Snapshot().Index().AccountName(created.ID))

	w = doJSON(router, http.MethodDelete, "/accounts/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, f.st.Snapshot().Accounts, 2)
}

func TestAccountHandler_Errors(t *testing.T) {
	f := newFixture(t)
	router := accountRouter(f)

	// 缺少名称
	w := doJSON(router, http.MethodPost, "/accounts", gin.H{"type": "bank"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 未知账户类型
	w = doJSON(router, http.MethodPost, "/accounts", gin.H{"name": "Crypto", "type": "wallet"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeData(t, w, nil)
	assert.Contains(t, resp.Message, "type")

	w = doJSON(router, http.MethodPut, "/accounts/missing", gin.H{"name": "X", "type": "cash"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodDelete, "/accounts/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/accounts/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
