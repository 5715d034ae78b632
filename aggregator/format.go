package aggregator

import "github.com/shopspring/decimal"

// FormatMoney 保留两位小数
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatPercent 保留一位小数并带 %
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
