package api

import (
	"context"
	"net/http"
	"testing"

	"ledgerboard/aggregator"
	"ledgerboard/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budgetRouter(f *fixture) *gin.Engine {
	h := NewBudgetHandler(f.st)
	router := gin.New()
	router.GET("/budgets", h.List)
	router.GET("/budgets/progress", h.Progress)
	router.GET("/budgets/:id", h.Get)
	router.POST("/budgets", h.Create)
	router.PUT("/budgets/:id", h.Update)
	router.DELETE("/budgets/:id", h.Delete)
	return router
}

func TestBudgetHandler_Progress(t *testing.T) {
	f := newFixture(t)
	router := budgetRouter(f)

	w := doJSON(router, http.MethodPost, "/budgets", gin.H{"category_id": f.food.ID, "amount": "100", "period": "monthly"})
	assert.Equal(t, http.StatusOK, w.Code)
	var created models.Budget
	decodeData(t, w, &created)

	var progress []aggregator.BudgetProgress
	decodeData(t, doJSON(router, http.MethodGet, "/budgets/progress", nil), &progress)
	require.Len(t, progress, 1)
	p := progress[0]
	// 本月只有 3 月 5 日的 120，2 月的 80 不计入
	assert.Equal(t, "120", p.Spent.String())
	assert.True(t, p.IsOverBudget)
	assert.Equal(t, "20", p.OverAmount.String())
	assert.Equal(t, "100", p.Progress.String())
	assert.Equal(t, "Groceries", p.CategoryName)
	assert.Equal(t, aggregator.AllAccountsName, p.AccountName)

	var single aggregator.BudgetProgress
	decodeData(t, doJSON(router, http.MethodGet, "/budgets/"+created.ID, nil), &single)
	assert.Equal(t, created.ID, single.Budget.ID)
}

func TestBudgetHandler_CRUD(t *testing.T) {
	f := newFixture(t)
	router := budgetRouter(f)

	b, err := f.st.AddBudget(context.Background(), models.Budget{CategoryID: f.food.ID, Amount: decimal.NewFromInt(500), Period: models.PeriodWeekly})
	require.NoError(t, err)

	w := doJSON(router, http.MethodPut, "/budgets/"+b.ID, gin.H{"category_id": f.food.ID, "amount": 600, "period": "yearly", "account_id": f.bank.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	var list []models.Budget
	decodeData(t, doJSON(router, http.MethodGet, "/budgets", nil), &list)
	require.Len(t, list, 1)
	assert.Equal(t, models.PeriodYearly, list[0].Period)

	var single aggregator.BudgetProgress
	decodeData(t, doJSON(router, http.MethodGet, "/budgets/"+b.ID, nil), &single)
	assert.Equal(t, "Main Bank", single.AccountName)

	w = doJSON(router, http.MethodPost, "/budgets", gin.H{"category_id": f.food.ID, "amount": 10, "period": "daily"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodDelete, "/budgets/"+b.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, "/budgets/"+b.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
