package aggregator

import (
	"slices"
	"strings"

	"ledgerboard/models"
)

// 未知实体的展示默认值
const (
	UnknownAccountName    = "Unknown"
	AllAccountsName       = "All Accounts"
	UncategorizedName     = "Uncategorized"
	FallbackCategoryColor = "#CBD5E1"
	DefaultSeriesColor    = "#3B82F6"
)

// Snapshot 某一时刻四个实体集合的只读视图
// 应通过 NewSnapshot 构造，持有者不得修改其中的切片
type Snapshot struct {
	Accounts     []models.Account     `json:"accounts"`
	Transactions []models.Transaction `json:"transactions"`
	Categories   []models.Category    `json:"categories"`
	Budgets      []models.Budget      `json:"budgets"`

	index *Index
}

// NewSnapshot 构造快照并建立索引
func NewSnapshot(accounts []models.Account, txs []models.Transaction, categories []models.Category, budgets []models.Budget) *Snapshot {
	s := &Snapshot{
		Accounts:     nonNil(accounts),
		Transactions: nonNil(txs),
		Categories:   nonNil(categories),
		Budgets:      nonNil(budgets),
	}
	s.index = newIndex(s)
	return s
}

// Index 返回按ID建立的查找表
func (s *Snapshot) Index() *Index {
	if s.index == nil {
		s.index = newIndex(s)
	}
	return s.index
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Index 按ID查找实体
type Index struct {
	accounts     map[string]models.Account
	categories   map[string]models.Category
	budgets      map[string]models.Budget
	transactions map[string]models.Transaction
}

func newIndex(s *Snapshot) *Index {
	idx := &Index{
		accounts:     make(map[string]models.Account, len(s.Accounts)),
		categories:   make(map[string]models.Category, len(s.Categories)),
		budgets:      make(map[string]models.Budget, len(s.Budgets)),
		transactions: make(map[string]models.Transaction, len(s.Transactions)),
	}
	for _, a := range s.Accounts {
		idx.accounts[a.ID] = a
	}
	for _, c := range s.Categories {
		idx.categories[c.ID] = c
	}
	for _, b := range s.Budgets {
		idx.budgets[b.ID] = b
	}
	for _, t := range s.Transactions {
		idx.transactions[t.ID] = t
	}
	return idx
}

func (idx *Index) Account(id string) (models.Account, bool) {
	a, ok := idx.accounts[id]
	return a, ok
}

func (idx *Index) Category(id string) (models.Category, bool) {
	c, ok := idx.categories[id]
	return c, ok
}

func (idx *Index) Budget(id string) (models.Budget, bool) {
	b, ok := idx.budgets[id]
	return b, ok
}

func (idx *Index) Transaction(id string) (models.Transaction, bool) {
	t, ok := idx.transactions[id]
	return t, ok
}

// AccountName 未知账户返回 "Unknown"
func (idx *Index) AccountName(id string) string {
	if a, ok := idx.accounts[id]; ok {
		return a.Name
	}
	return UnknownAccountName
}

// ScopeName 预算的账户范围，nil 表示全部账户
func (idx *Index) ScopeName(accountID *string) string {
	if accountID == nil || *accountID == "" {
		return AllAccountsName
	}
	return idx.AccountName(*accountID)
}

// CategoryName 未知类别返回 "Uncategorized"
func (idx *Index) CategoryName(id string) string {
	if c, ok := idx.categories[id]; ok {
		return c.Name
	}
	return UncategorizedName
}

func (idx *Index) CategoryColor(id string) string {
	if c, ok := idx.categories[id]; ok && c.Color != "" {
		return c.Color
	}
	return FallbackCategoryColor
}

// Children 返回子类别，按名称排序
func (idx *Index) Children(parentID string) []models.Category {
	out := make([]models.Category, 0)
	for _, c := range idx.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b models.Category) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
