package aggregator

import (
	"testing"
	"time"

	"ledgerboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplePoints(t *testing.T) {
	r := models.DateRange{Start: day(2024, 1, 1), End: day(2024, 2, 10)}
	got := SamplePoints(r)
	assert.Equal(t, []time.Time{day(2024, 1, 1), day(2024, 1, 16), day(2024, 1, 31), day(2024, 2, 10)}, got)

	exact := SamplePoints(models.DateRange{Start: day(2024, 1, 1), End: day(2024, 1, 31)})
	assert.Equal(t, []time.Time{day(2024, 1, 1), day(2024, 1, 16), day(2024, 1, 31)}, exact)

	single := SamplePoints(models.DateRange{Start: day(2024, 1, 1), End: day(2024, 1, 1)})
	assert.Len(t, single, 1)

	assert.Empty(t, SamplePoints(models.DateRange{Start: day(2024, 1, 2), End: day(2024, 1, 1)}))
}

// naiveEvolution 按定义逐点重放，用于对照
func naiveEvolution(accounts []models.Account, txs []models.Transaction, r models.DateRange) map[string][]string {
	out := make(map[string][]string)
	for _, a := range accounts {
		for _, p := range SamplePoints(r) {
			var upTo []models.Transaction
			for _, t := range txs {
				if !t.Date.After(p) {
					upTo = append(upTo, t)
				}
			}
			out[a.ID] = append(out[a.ID], DisplayedBalance(a, upTo).String())
		}
	}
	return out
}

func TestBalanceEvolution(t *testing.T) {
	a := account("a", 5000)
	a.Color = "#10B981"
	accounts := []models.Account{a, account("b", 10000)}
	txs := []models.Transaction{
		expense("3", "a", "food", 200, day(2024, 1, 20)),
		income("1", "a", "salary", 4500, day(2024, 1, 1)),
		transfer("2", "a", "b", 1000, day(2024, 1, 16)),
		income("4", "b", "interest", 10, day(2024, 2, 10)),
		income("5", "b", "interest", 99, day(2024, 3, 1)),
		expense("0", "a", "food", 50, day(2023, 12, 31)),
	}
	r := models.DateRange{Start: day(2024, 1, 1), End: day(2024, 2, 10)}

	series := BalanceEvolution(accounts, txs, r)
	require.Len(t, series, 2)
	assert.Equal(t, "#10B981", series[0].Color)
	assert.Equal(t, DefaultSeriesColor, series[1].Color)

	balances := func(s AccountSeries) []string {
		out := make([]string, 0, len(s.Points))
		for _, p := range s.Points {
			out = append(out, p.Balance.String())
		}
		return out
	}
	assert.Equal(t, []string{"9450", "8450", "8250", "8250"}, balances(series[0]))
	assert.Equal(t, []string{"10000", "11000", "11000", "11010"}, balances(series[1]))

	naive := naiveEvolution(accounts, txs, r)
	assert.Equal(t, naive["a"], balances(series[0]))
	assert.Equal(t, naive["b"], balances(series[1]))
	assert.Equal(t, "0", txs[5].ID, "输入顺序不应被修改")
}

func TestBalanceEvolution_EmptyRange(t *testing.T) {
	series := BalanceEvolution([]models.Account{account("a", 1)}, nil, models.DateRange{Start: day(2024, 1, 2), End: day(2024, 1, 1)})
	require.Len(t, series, 1)
	assert.Empty(t, series[0].Points)
}
