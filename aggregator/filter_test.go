package aggregator

import (
	"testing"

	"ledgerboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger() []models.Transaction {
	return []models.Transaction{
		income("1", "a", "salary", 4500, day(2024, 1, 1)),
		expense("2", "a", "food", 35, day(2024, 1, 10)),
		expense("3", "b", "fun", 60, day(2024, 1, 31)),
		transfer("4", "a", "b", 1000, day(2024, 2, 1)),
		expense("5", "b", "food", 12, day(2024, 2, 2)),
	}
}

func ids(txs []models.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, t := range txs {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTransactions(t *testing.T) {
	txs := sampleLedger()
	jan := models.DateRange{Start: day(2024, 1, 1), End: day(2024, 1, 31)}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"全部类型", Filter{DateRange: &jan, Types: models.AllTransactionTypes()}, []string{"1", "2", "3"}},
		{"按账户", Filter{DateRange: &jan, AccountIDs: []string{"b"}, Types: models.AllTransactionTypes()}, []string{"3"}},
		{"按类别", Filter{CategoryIDs: []string{"food"}, Types: models.AllTransactionTypes()}, []string{"2", "5"}},
		{"按类型", Filter{Types: []models.TransactionType{models.TxTransfer}}, []string{"4"}},
		{"类型为空", Filter{DateRange: &jan}, []string{}},
		{"描述搜索", Filter{Search: "  LUNCH ", Types: models.AllTransactionTypes()}, []string{"2"}},
	}
	txs[1].Description = "Team lunch"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, ids(FilterTransactions(txs, tt.filter)))
		})
	}
}

func TestFilterTransactions_InclusiveEndpoints(t *testing.T) {
	txs := sampleLedger()
	r := models.DateRange{Start: day(2024, 1, 10), End: day(2024, 1, 31)}
	got := FilterTransactions(txs, Filter{DateRange: &r, Types: models.AllTransactionTypes()})
	assert.ElementsMatch(t, []string{"2", "3"}, ids(got))
}

func TestFilterTransactions_Idempotent(t *testing.T) {
	txs := sampleLedger()
	before := append([]models.Transaction(nil), txs...)
	f := Filter{AccountIDs: []string{"a"}, Types: models.AllTransactionTypes()}

	first := FilterTransactions(txs, f)
	second := FilterTransactions(txs, f)
	assert.Equal(t, first, second)
	assert.Equal(t, before, txs)
}

func TestSortByDateDescAndRecent(t *testing.T) {
	txs := sampleLedger()
	txs = append(txs, expense("6", "a", "food", 1, day(2024, 2, 2)))

	sorted := SortByDateDesc(txs)
	assert.Equal(t, []string{"6", "5", "4", "3", "2", "1"}, ids(sorted))
	assert.Equal(t, "1", txs[0].ID, "原切片不应被修改")

	recent := Recent(txs, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, []string{"6", "5"}, ids(recent))
	assert.Len(t, Recent(txs[:1], 5), 1)
}

func TestIndex_Defaults(t *testing.T) {
	s := NewSnapshot(
		[]models.Account{account("a", 0)},
		nil,
		[]models.Category{
			{ID: "food", Name: "Food", Type: models.CategoryExpense, Color: "#F59E0B"},
			{ID: "snacks", Name: "Snacks", Type: models.CategoryExpense, ParentID: ptr("food")},
			{ID: "coffee", Name: "Coffee", Type: models.CategoryExpense, ParentID: ptr("food")},
		},
		nil,
	)
	idx := s.Index()

	assert.Equal(t, "账户a", idx.AccountName("a"))
	assert.Equal(t, UnknownAccountName, idx.AccountName("x"))
	assert.Equal(t, UncategorizedName, idx.CategoryName("x"))
	assert.Equal(t, "#F59E0B", idx.CategoryColor("food"))
	assert.Equal(t, FallbackCategoryColor, idx.CategoryColor("snacks"))
	assert.Equal(t, FallbackCategoryColor, idx.CategoryColor("x"))

	children := idx.Children("food")
	require.Len(t, children, 2)
	assert.Equal(t, "Coffee", children[0].Name)

	_, ok := idx.Transaction("nope")
	assert.False(t, ok)
	assert.NotNil(t, s.Transactions)
	assert.Empty(t, s.Budgets)

	lazy := &Snapshot{Accounts: []models.Account{account("z", 1)}}
	_, ok = lazy.Index().Account("z")
	assert.True(t, ok)
}
