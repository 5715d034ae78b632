package aggregator

import (
	"ledgerboard/models"

	"github.com/shopspring/decimal"
)

// CategoryTotal 类别金额合计（不区分方向）
// period 为 nil 时统计全部时间，否则只统计区间内（含端点）的交易
func CategoryTotal(categoryID string, txs []models.Transaction, period *models.DateRange) decimal.Decimal {
	total := decimal.Zero
	for i := range txs {
		t := &txs[i]
		if t.CategoryID != categoryID {
			continue
		}
		if period != nil && !period.Contains(t.Date) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}
