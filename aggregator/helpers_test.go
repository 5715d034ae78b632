package aggregator

import (
	"time"

	"ledgerboard/models"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(s string) *string { return &s }

func income(id, account, category string, amount int64, at time.Time) models.Transaction {
	return models.Transaction{ID: id, AccountID: account, CategoryID: category, Amount: dec(amount), Date: at, Type: models.TxIncome}
}

func expense(id, account, category string, amount int64, at time.Time) models.Transaction {
	return models.Transaction{ID: id, AccountID: account, CategoryID: category, Amount: dec(amount), Date: at, Type: models.TxExpense}
}

func transfer(id, from, to string, amount int64, at time.Time) models.Transaction {
	return models.Transaction{ID: id, AccountID: from, CategoryID: "cat-transfer", Amount: dec(amount), Date: at, Type: models.TxTransfer, TargetAccountID: ptr(to)}
}

func account(id string, initial int64) models.Account {
	return models.Account{ID: id, Name: "账户" + id, Type: models.AccountBank, Currency: models.DefaultCurrency, InitialBalance: dec(initial)}
}
