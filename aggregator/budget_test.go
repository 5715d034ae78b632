package aggregator

import (
	"testing"
	"time"

	"ledgerboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows(t *testing.T) {
	// 2024-05-15 是星期三
	now := time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC)

	w := WeekWindow(now)
	assert.Equal(t, day(2024, 5, 12), w.Start)
	assert.Equal(t, time.Sunday, w.Start.Weekday())
	assert.Equal(t, day(2024, 5, 19).Add(-time.Nanosecond), w.End)
	assert.Equal(t, time.Saturday, w.End.Weekday())

	m := MonthWindow(now)
	assert.Equal(t, day(2024, 5, 1), m.Start)
	assert.Equal(t, day(2024, 6, 1).Add(-time.Nanosecond), m.End)

	y := YearWindow(now)
	assert.Equal(t, day(2024, 1, 1), y.Start)
	assert.Equal(t, day(2025, 1, 1).Add(-time.Nanosecond), y.End)

	// 周日当天即为周期起点
	sunday := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sunday, WeekWindow(sunday).Start)
}

func TestWeekWindowFrom_Monday(t *testing.T) {
	monday := WeekWindowFrom(time.Monday)

	// 周三属于 5-13 周一开始的一周
	w := monday(time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, day(2024, 5, 13), w.Start)
	assert.Equal(t, day(2024, 5, 20).Add(-time.Nanosecond), w.End)

	// 周日是上一周的最后一天
	w = monday(time.Date(2024, 5, 19, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, day(2024, 5, 13), w.Start)
	assert.Equal(t, time.Sunday, w.End.Weekday())
}

func TestGetWindowResolver_FallsBackToMonthly(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, MonthWindow(now), GetWindowResolver("fortnightly").Window(now))
}

func TestRegisterWindowResolver(t *testing.T) {
	const quarterly models.BudgetPeriod = "quarterly"
	RegisterWindowResolver(quarterly, WindowFunc(func(now time.Time) models.DateRange {
		return models.DateRange{Start: day(2024, 4, 1), End: day(2024, 6, 30)}
	}))
	defer delete(windowResolvers, quarterly)

	got := GetWindowResolver(quarterly).Window(time.Now())
	assert.Equal(t, day(2024, 4, 1), got.Start)
}

func TestEvaluateBudget_ExactlyAtCap(t *testing.T) {
	now := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	b := models.Budget{ID: "b", CategoryID: "food", Amount: dec(500), Period: models.PeriodMonthly, StartDate: day(2024, 5, 1)}
	txs := []models.Transaction{
		expense("1", "a", "food", 200, day(2024, 5, 1)),
		expense("2", "a", "food", 300, day(2024, 5, 31).Add(23*time.Hour)),
		expense("3", "a", "food", 999, day(2024, 4, 30)),
	}

	p := EvaluateBudget(b, txs, now)
	assert.True(t, p.Spent.Equal(dec(500)))
	assert.False(t, p.IsOverBudget)
	assert.True(t, p.Progress.Equal(dec(100)))
	assert.True(t, p.Remaining.IsZero())
	assert.True(t, p.OverAmount.IsZero())
}

func TestEvaluateBudget_Over(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	b := models.Budget{CategoryID: "fun", Amount: dec(300), Period: models.PeriodWeekly}
	txs := []models.Transaction{
		expense("1", "a", "fun", 250, day(2024, 5, 12)),
		expense("2", "a", "fun", 100, day(2024, 5, 18)),
		expense("3", "a", "fun", 100, day(2024, 5, 19)),
	}

	p := EvaluateBudget(b, txs, now)
	assert.True(t, p.Spent.Equal(dec(350)))
	assert.True(t, p.IsOverBudget)
	assert.True(t, p.Progress.Equal(dec(100)))
	assert.True(t, p.OverAmount.Equal(dec(50)))
	assert.True(t, p.Remaining.IsZero())
}

func TestEvaluateBudget_ZeroAmount(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	b := models.Budget{CategoryID: "fun", Amount: dec(0), Period: models.PeriodYearly}

	p := EvaluateBudget(b, []models.Transaction{expense("1", "a", "fun", 50, day(2024, 2, 1))}, now)
	assert.True(t, p.IsOverBudget)
	assert.True(t, p.Progress.Equal(dec(100)))
	assert.True(t, p.OverAmount.Equal(dec(50)))

	empty := EvaluateBudget(b, nil, now)
	assert.False(t, empty.IsOverBudget)
	assert.True(t, empty.Progress.IsZero())
}

func TestProgress_MonotonicAndStrict(t *testing.T) {
	amount := dec(200)
	prev := dec(-1)
	for spent := int64(0); spent <= 400; spent += 10 {
		pct, over := Progress(dec(spent), amount)
		assert.True(t, pct.GreaterThanOrEqual(prev), "spent=%d", spent)
		assert.True(t, pct.LessThanOrEqual(dec(100)))
		assert.Equal(t, spent > 200, over, "spent=%d", spent)
		prev = pct
	}

	pct, _ := Progress(dec(1), dec(3))
	assert.Equal(t, "33.33", pct.String())
}

func TestEvaluateBudgets_Labels(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	s := NewSnapshot(
		[]models.Account{account("a", 0)},
		[]models.Transaction{expense("1", "a", "food", 40, day(2024, 5, 2))},
		[]models.Category{{ID: "food", Name: "Groceries", Type: models.CategoryExpense}},
		[]models.Budget{
			{ID: "b1", CategoryID: "food", Amount: dec(100), Period: models.PeriodMonthly},
			{ID: "b2", CategoryID: "gone", Amount: dec(100), Period: models.PeriodMonthly, AccountID: ptr("a")},
			{ID: "b3", CategoryID: "food", Amount: dec(100), Period: models.PeriodMonthly, AccountID: ptr("zzz")},
		},
	)

	got := EvaluateBudgets(s, now)
	require.Len(t, got, 3)
	assert.Equal(t, "Groceries", got[0].CategoryName)
	assert.Equal(t, AllAccountsName, got[0].AccountName)
	assert.True(t, got[0].Progress.Equal(dec(40)))
	assert.Equal(t, UncategorizedName, got[1].CategoryName)
	assert.Equal(t, "账户a", got[1].AccountName)
	assert.Equal(t, UnknownAccountName, got[2].AccountName)
}
