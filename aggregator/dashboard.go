package aggregator

import (
	"time"

	"ledgerboard/models"

	"github.com/shopspring/decimal"
)

// RecentLimit 首页展示的最近交易数
const RecentLimit = 5

// AccountSummary 账户及其当前余额
type AccountSummary struct {
	Account models.Account  `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// Dashboard 首页概览
type Dashboard struct {
	TotalBalance decimal.Decimal      `json:"total_balance"`
	Month        models.DateRange     `json:"month"`
	MonthIncome  decimal.Decimal      `json:"month_income"`
	MonthExpense decimal.Decimal      `json:"month_expense"`
	Accounts     []AccountSummary     `json:"accounts"`
	Recent       []models.Transaction `json:"recent"`
}

// BuildDashboard 汇总总余额、本月收支和最近交易
func BuildDashboard(s *Snapshot, now time.Time) Dashboard {
	balances := Balances(s.Accounts, s.Transactions)
	month := MonthWindow(now)

	d := Dashboard{
		TotalBalance: decimal.Zero,
		Month:        month,
		Accounts:     make([]AccountSummary, 0, len(s.Accounts)),
		Recent:       Recent(s.Transactions, RecentLimit),
	}
	for _, a := range s.Accounts {
		d.Accounts = append(d.Accounts, AccountSummary{Account: a, Balance: balances[a.ID]})
		d.TotalBalance = d.TotalBalance.Add(balances[a.ID])
	}

	summary := Summarize(FilterTransactions(s.Transactions, Filter{
		DateRange: &month,
		Types:     []models.TransactionType{models.TxIncome, models.TxExpense},
	}))
	d.MonthIncome = summary.Income
	d.MonthExpense = summary.Expense
	return d
}
