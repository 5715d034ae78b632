package aggregator

import (
	"slices"
	"strings"

	"ledgerboard/models"
)

// Filter 报表筛选条件
// DateRange 为 nil 时不限时间；AccountIDs、CategoryIDs 为空表示全部；
// Types 为空时不匹配任何交易
type Filter struct {
	DateRange   *models.DateRange
	AccountIDs  []string
	CategoryIDs []string
	Types       []models.TransactionType
	Search      string
}

// FilterTransactions 按条件筛选，不保证顺序
func FilterTransactions(txs []models.Transaction, f Filter) []models.Transaction {
	accounts := toSet(f.AccountIDs)
	categories := toSet(f.CategoryIDs)
	types := toSet(f.Types)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Transaction, 0)
	for _, t := range txs {
		if f.DateRange != nil && !f.DateRange.Contains(t.Date) {
			continue
		}
		if len(accounts) > 0 && !accounts[t.AccountID] {
			continue
		}
		if len(categories) > 0 && !categories[t.CategoryID] {
			continue
		}
		if !types[t.Type] {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortByDateDesc 返回按日期倒序的副本，同一时间按ID倒序
func SortByDateDesc(txs []models.Transaction) []models.Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b models.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return out
}

// Recent 最近的 n 笔交易
func Recent(txs []models.Transaction, n int) []models.Transaction {
	sorted := SortByDateDesc(txs)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func toSet[T comparable](items []T) map[T]bool {
	set := make(map[T]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
