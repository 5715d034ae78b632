package aggregator

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"ledgerboard/models"

	"github.com/shopspring/decimal"
)

// MonthBucket 单月收支
type MonthBucket struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlyBuckets 按自然月汇总收入与支出
// 区间内每个月都会有一个桶（没有交易时为 0），转账不计入，按时间先后排列
func MonthlyBuckets(txs []models.Transaction, r models.DateRange) []MonthBucket {
	buckets := make([]MonthBucket, 0)
	if r.End.Before(r.Start) {
		return buckets
	}
	loc := r.Start.Location()
	end := r.End.In(loc)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, loc)

	pos := make(map[int]int)
	for cur := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, loc); !cur.After(last); cur = cur.AddDate(0, 1, 0) {
		pos[monthKey(cur)] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Year:    cur.Year(),
			Month:   cur.Month(),
			Label:   fmt.Sprintf("%d-%02d", cur.Year(), int(cur.Month())),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}

	for i := range txs {
		t := &txs[i]
		if !r.Contains(t.Date) {
			continue
		}
		b, ok := pos[monthKey(t.Date.In(loc))]
		if !ok {
			continue
		}
		switch t.Type {
		case models.TxIncome:
			buckets[b].Income = buckets[b].Income.Add(t.Amount)
		case models.TxExpense:
			buckets[b].Expense = buckets[b].Expense.Add(t.Amount)
		}
	}
	return buckets
}

func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// Summary 收支汇总
type Summary struct {
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Transfer decimal.Decimal `json:"transfer"`
	Net      decimal.Decimal `json:"net"`
	Count    int             `json:"count"`
}

// Summarize 汇总一组交易，Net = 收入 - 支出
func Summarize(txs []models.Transaction) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero, Transfer: decimal.Zero, Count: len(txs)}
	for i := range txs {
		switch txs[i].Type {
		case models.TxIncome:
			s.Income = s.Income.Add(txs[i].Amount)
		case models.TxExpense:
			s.Expense = s.Expense.Add(txs[i].Amount)
		case models.TxTransfer:
			s.Transfer = s.Transfer.Add(txs[i].Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// CategoryShare 类别占比
type CategoryShare struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Amount     decimal.Decimal `json:"amount"`
	Percent    decimal.Decimal `json:"percent"`
}

// CategoryDistribution 按类别汇总金额，去掉为 0 的类别，金额从大到小排列
func CategoryDistribution(txs []models.Transaction, idx *Index) []CategoryShare {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for i := range txs {
		t := &txs[i]
		totals[t.CategoryID] = totals[t.CategoryID].Add(t.Amount)
		grand = grand.Add(t.Amount)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for id, amount := range totals {
		if !amount.IsPositive() {
			continue
		}
		shares = append(shares, CategoryShare{
			CategoryID: id,
			Name:       idx.CategoryName(id),
			Color:      idx.CategoryColor(id),
			Amount:     amount,
			Percent:    amount.Mul(hundred).Div(grand).Round(1),
		})
	}
	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.CategoryID, b.CategoryID)
	})
	return shares
}
