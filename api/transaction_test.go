package api

import (
	"net/http"
	"testing"

	"ledgerboard/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transactionRouter(f *fixture) *gin.Engine {
	h := NewTransactionHandler(f.st)
	router := gin.New()
	router.GET("/transactions", h.List)
	router.GET("/transactions/:id", h.Get)
	router.POST("/transactions", h.Create)
	router.PUT("/transactions/:id", h.Update)
	router.DELETE("/transactions/:id", h.Delete)
	return router
}

type txPage = Page[models.Transaction]

func TestTransactionHandler_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	w := doJSON(transactionRouter(f), http.MethodGet, "/transactions", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page txPage
	decodeData(t, w, &page)
	assert.EqualValues(t, 4, page.Total)
	require.Len(t, page.List, 4)
	assert.Equal(t, "Top up wallet", page.List[0].Description)
	assert.Equal(t, "Market", page.List[3].Description)
}

func TestTransactionHandler_ListFilters(t *testing.T) {
	f := newFixture(t)
	router := transactionRouter(f)

	// 描述搜索不区分大小写
	var page txPage
	decodeData(t, doJSON(router, http.MethodGet, "/transactions?search=GROCER", nil), &page)
	require.Len(t, page.List, 1)
	assert.Equal(t, []string{"food"}, page.List[0].Tags)

	decodeData(t, doJSON(router, http.MethodGet, "/transactions?types=expense&account_ids="+f.cash.ID, nil), &page)
	require.Len(t, page.List, 1)
	assert.Equal(t, "Market", page.List[0].Description)

	decodeData(t, doJSON(router, http.MethodGet, "/transactions?start_date=2024-03-01&end_date=2024-03-05", nil), &page)
	assert.EqualValues(t, 2, page.Total)

	decodeData(t, doJSON(router, http.MethodGet, "/transactions?page=2&page_size=3", nil), &page)
	assert.EqualValues(t, 4, page.Total)
	assert.Len(t, page.List, 1)

	w := doJSON(router, http.MethodGet, "/transactions?types=refund", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionHandler_CreateDefaultsDate(t *testing.T) {
	f := newFixture(t)
	router := transactionRouter(f)

	w := doJSON(router, http.MethodPost, "/transactions", gin.H{
		"account_id":  f.cash.ID,
		"category_id": f.food.ID,
		"amount":      "12.50",
		"type":        "expense",
		"description": "Coffee beans",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var created models.Transaction
	decodeData(t, w, &created)
	assert.True(t, created.Date.Equal(testNow))

	w = doJSON(router, http.MethodGet, "/transactions/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/transactions/"+created.ID, gin.H{
		"account_id": f.cash.ID, "category_id": f.food.ID, "amount": "15", "type": "expense",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated, ok := f.st.Snapshot().Index().Transaction(created.ID)
	require.True(t, ok)
	assert.Equal(t, "15", updated.Amount.String())

	w = doJSON(router, http.MethodDelete, "/transactions/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, "/transactions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionHandler_CreateRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	router := transactionRouter(f)

	cases := []struct {
		name string
		body gin.H
	}{
		{"same account transfer", gin.H{"account_id": f.bank.ID, "amount": 10, "type": "transfer", "target_account_id": f.bank.ID}},
		{"transfer without target", gin.H{"account_id": f.bank.ID, "amount": 10, "type": "transfer"}},
		{"unknown account", gin.H{"account_id": "missing", "amount": 10, "type": "income"}},
		{"negative amount", gin.H{"account_id": f.bank.ID, "amount": -5, "type": "expense"}},
		{"missing type", gin.H{"account_id": f.bank.ID, "amount": 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/transactions", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Len(t, f.st.Snapshot().Transactions, 4)

	w := doJSON(router, http.MethodPut, "/transactions/missing", gin.H{"account_id": f.bank.ID, "amount": 1, "type": "income"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
