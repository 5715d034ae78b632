package aggregator

import (
	"time"

	"ledgerboard/models"
)

// 报表预设时间范围
const (
	RangeThisMonth = "this_month"
	RangeLastMonth = "last_month"
	RangeThisWeek  = "this_week"
	RangeThisYear  = "this_year"
)

// PresetRange 解析预设范围，未知名称返回 false
func PresetRange(name string, now time.Time) (models.DateRange, bool) {
	switch name {
	case RangeThisMonth, "":
		return MonthWindow(now), true
	case RangeLastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return MonthWindow(first.AddDate(0, -1, 0)), true
	case RangeThisWeek:
		return GetWindowResolver(models.PeriodWeekly).Window(now), true
	case RangeThisYear:
		return YearWindow(now), true
	}
	return models.DateRange{}, false
}
