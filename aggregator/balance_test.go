package aggregator

import (
	"testing"
	"time"

	"ledgerboard/models"

	"github.com/stretchr/testify/assert"
)

func TestAccountBalance_NoTransactions(t *testing.T) {
	a := account("a", 5000)
	assert.True(t, AccountBalance("a", nil).IsZero())
	assert.True(t, DisplayedBalance(a, nil).Equal(dec(5000)))
	assert.True(t, AccountBalance("missing", []models.Transaction{income("1", "a", "c", 10, day(2024, 1, 1))}).IsZero())
}

func TestDisplayedBalance_IncomeAndExpense(t *testing.T) {
	a := account("a", 5000)
	txs := []models.Transaction{
		income("1", "a", "salary", 4500, day(2024, 1, 1)),
		expense("2", "a", "rent", 1200, day(2024, 1, 2)),
	}
	assert.True(t, DisplayedBalance(a, txs).Equal(dec(8300)))
}

func TestTransferBetweenAccounts(t *testing.T) {
	a := account("a", 5000)
	b := account("b", 10000)
	txs := []models.Transaction{transfer("1", "a", "b", 1000, day(2024, 1, 5))}

	assert.True(t, DisplayedBalance(a, txs).Equal(dec(4000)))
	assert.True(t, DisplayedBalance(b, txs).Equal(dec(11000)))
	assert.True(t, TotalBalance([]models.Account{a, b}, txs).Equal(dec(15000)))
}

func TestTotalBalance_TransfersNetToZero(t *testing.T) {
	accounts := []models.Account{account("a", 5000), account("b", 10000), account("c", 500)}
	txs := []models.Transaction{
		income("1", "a", "salary", 4500, day(2024, 1, 1)),
		expense("2", "c", "food", 35, day(2024, 1, 2)),
		transfer("3", "a", "b", 1000, day(2024, 1, 3)),
		transfer("4", "b", "c", 250, day(2024, 1, 4)),
		expense("5", "b", "rent", 1200, day(2024, 1, 5)),
		income("6", "c", "gift", 80, day(2024, 1, 6)),
	}

	// 初始余额之和 + 收入 - 支出
	want := dec(15500).Add(dec(4580)).Sub(dec(1235))
	assert.True(t, TotalBalance(accounts, txs).Equal(want), TotalBalance(accounts, txs).String())

	sum := dec(0)
	for _, a := range accounts {
		sum = sum.Add(DisplayedBalance(a, txs))
	}
	assert.True(t, sum.Equal(want))
}

func TestBalances_IgnoresUnknownAccounts(t *testing.T) {
	accounts := []models.Account{account("a", 100)}
	txs := []models.Transaction{
		income("1", "ghost", "c", 50, day(2024, 1, 1)),
		transfer("2", "a", "ghost", 30, day(2024, 1, 2)),
	}
	b := Balances(accounts, txs)
	assert.Len(t, b, 1)
	assert.True(t, b["a"].Equal(dec(70)))
}

func TestCategoryTotal(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "a", "food", 20, day(2024, 1, 1)),
		expense("2", "a", "food", 30, day(2024, 1, 31)),
		expense("3", "b", "food", 40, day(2024, 2, 1)),
		income("4", "a", "salary", 1000, day(2024, 1, 15)),
	}

	assert.True(t, CategoryTotal("food", txs, nil).Equal(dec(90)))

	jan := models.DateRange{Start: day(2024, 1, 1), End: day(2024, 1, 31)}
	assert.True(t, CategoryTotal("food", txs, &jan).Equal(dec(50)), "端点上的交易应计入")

	narrow := models.DateRange{Start: day(2024, 1, 1).Add(time.Second), End: day(2024, 1, 30)}
	assert.True(t, CategoryTotal("food", txs, &narrow).IsZero())
	assert.True(t, CategoryTotal("unknown", txs, nil).IsZero())
}
