package aggregator

import (
	"time"

	"ledgerboard/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BudgetProgress 预算在当前周期内的执行情况
type BudgetProgress struct {
	Budget       models.Budget    `json:"budget"`
	CategoryName string           `json:"category_name"`
	AccountName  string           `json:"account_name"`
	Window       models.DateRange `json:"window"`
	Spent        decimal.Decimal  `json:"spent"`
	Progress     decimal.Decimal  `json:"progress"` // 0-100，用于进度条
	IsOverBudget bool             `json:"is_over_budget"`
	OverAmount   decimal.Decimal  `json:"over_amount"`
	Remaining    decimal.Decimal  `json:"remaining"`
}

// EvaluateBudget 计算预算当前周期的花费与进度
// 周期只由 period 和 now 决定，StartDate 不参与
func EvaluateBudget(b models.Budget, txs []models.Transaction, now time.Time) BudgetProgress {
	window := GetWindowResolver(b.Period).Window(now)
	spent := CategoryTotal(b.CategoryID, txs, &window)

	p := BudgetProgress{
		Budget:     b,
		Window:     window,
		Spent:      spent,
		OverAmount: decimal.Zero,
		Remaining:  decimal.Zero,
	}
	p.Progress, p.IsOverBudget = Progress(spent, b.Amount)
	if p.IsOverBudget {
		p.OverAmount = spent.Sub(b.Amount)
	} else {
		p.Remaining = b.Amount.Sub(spent)
	}
	return p
}

// EvaluateBudgets 批量计算，标签从索引解析
func EvaluateBudgets(s *Snapshot, now time.Time) []BudgetProgress {
	idx := s.Index()
	out := make([]BudgetProgress, 0, len(s.Budgets))
	for _, b := range s.Budgets {
		p := EvaluateBudget(b, s.Transactions, now)
		p.CategoryName = idx.CategoryName(b.CategoryID)
		p.AccountName = idx.ScopeName(b.AccountID)
		out = append(out, p)
	}
	return out
}

// Progress 返回截断到 100 的百分比和是否超支（spent > amount）
// amount 为 0 时：有花费即视为超支且进度 100，否则为 0
func Progress(spent, amount decimal.Decimal) (decimal.Decimal, bool) {
	over := spent.GreaterThan(amount)
	if !amount.IsPositive() {
		if over {
			return hundred, true
		}
		return decimal.Zero, false
	}
	pct := spent.Mul(hundred).Div(amount).Round(2)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return pct, over
}
