package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"ledgerboard/models"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

type testResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// fixture 两个账户、两个类别和四笔交易
type fixture struct {
	st     *store.Store
	bank   models.Account
	cash   models.Account
	salary models.Category
	food   models.Category
}

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	st := store.New(store.WithClock(func() time.Time { return testNow }))

	f := &fixture{st: st}
	var err error
	f.bank, err = st.AddAccount(ctx, models.Account{Name: "Main Bank", Type: models.AccountBank, InitialBalance: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	f.cash, err = st.AddAccount(ctx, models.Account{Name: "Cash Wallet", Type: models.AccountCash, InitialBalance: decimal.NewFromInt(200)})
	require.NoError(t, err)
	f.salary, err = st.AddCategory(ctx, models.Category{Name: "Salary", Type: models.CategoryIncome, Color: "#10B981"})
	require.NoError(t, err)
	f.food, err = st.AddCategory(ctx, models.Category{Name: "Groceries", Type: models.CategoryExpense, Color: "#F59E0B"})
	require.NoError(t, err)

	txs := []models.Transaction{
		{AccountID: f.bank.ID, CategoryID: f.salary.ID, Amount: decimal.NewFromInt(3000), Type: models.TxIncome, Date: at(2024, 3, 1), Description: "March salary"},
		{AccountID: f.bank.ID, CategoryID: f.food.ID, Amount: decimal.NewFromInt(120), Type: models.TxExpense, Date: at(2024, 3, 5), Description: "Weekly groceries", Tags: []string{"food"}},
		{AccountID: f.cash.ID, CategoryID: f.food.ID, Amount: decimal.NewFromInt(80), Type: models.TxExpense, Date: at(2024, 2, 10), Description: "Market"},
		{AccountID: f.bank.ID, Amount: decimal.NewFromInt(300), Type: models.TxTransfer, Date: at(2024, 3, 10), Description: "Top up wallet", TargetAccountID: &f.cash.ID},
	}
	for _, tx := range txs {
		_, err := st.AddTransaction(ctx, tx)
		require.NoError(t, err)
	}
	return f
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) testResponse {
	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
	return resp
}
