package aggregator

import (
	"slices"
	"time"

	"ledgerboard/models"

	"github.com/shopspring/decimal"
)

// SampleIntervalDays 余额曲线的采样间隔
const SampleIntervalDays = 15

// SamplePoints 从 Start 起每 15 天一个点，末尾补上 End
func SamplePoints(r models.DateRange) []time.Time {
	points := make([]time.Time, 0)
	if r.End.Before(r.Start) {
		return points
	}
	for cur := r.Start; !cur.After(r.End); cur = cur.AddDate(0, 0, SampleIntervalDays) {
		points = append(points, cur)
	}
	if !points[len(points)-1].Equal(r.End) {
		points = append(points, r.End)
	}
	return points
}

// BalancePoint 某一时刻的余额
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountSeries 单个账户的余额曲线
type AccountSeries struct {
	AccountID string         `json:"account_id"`
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	Points    []BalancePoint `json:"points"`
}

// BalanceEvolution 计算每个账户在各采样点的余额
// 交易只排序一次，采样点之间用游标向前推进，各账户维护累计余额
func BalanceEvolution(accounts []models.Account, txs []models.Transaction, r models.DateRange) []AccountSeries {
	points := SamplePoints(r)

	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b models.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	running := make(map[string]decimal.Decimal, len(accounts))
	series := make([]AccountSeries, len(accounts))
	for i, a := range accounts {
		running[a.ID] = a.InitialBalance
		color := a.Color
		if color == "" {
			color = DefaultSeriesColor
		}
		series[i] = AccountSeries{
			AccountID: a.ID,
			Name:      a.Name,
			Color:     color,
			Points:    make([]BalancePoint, 0, len(points)),
		}
	}

	cursor := 0
	for _, p := range points {
		for cursor < len(sorted) && !sorted[cursor].Date.After(p) {
			apply(running, &sorted[cursor])
			cursor++
		}
		for i := range series {
			series[i].Points = append(series[i].Points, BalancePoint{Date: p, Balance: running[series[i].AccountID]})
		}
	}
	return series
}
