package aggregator

import (
	"time"

	"ledgerboard/models"
)

// WindowResolver 根据当前时间解析预算所在周期
type WindowResolver interface {
	Window(now time.Time) models.DateRange
}

// WindowFunc 函数适配器
type WindowFunc func(now time.Time) models.DateRange

func (f WindowFunc) Window(now time.Time) models.DateRange {
	return f(now)
}

// 注册表只应在启动阶段修改
var windowResolvers = map[models.BudgetPeriod]WindowResolver{
	models.PeriodWeekly:  WindowFunc(WeekWindow),
	models.PeriodMonthly: WindowFunc(MonthWindow),
	models.PeriodYearly:  WindowFunc(YearWindow),
}

// GetWindowResolver 未注册的周期按月处理
func GetWindowResolver(period models.BudgetPeriod) WindowResolver {
	if r, ok := windowResolvers[period]; ok {
		return r
	}
	return windowResolvers[models.PeriodMonthly]
}

// RegisterWindowResolver 注册或覆盖某个周期的解析器
func RegisterWindowResolver(period models.BudgetPeriod, r WindowResolver) {
	windowResolvers[period] = r
}

// WeekWindow 本周日 00:00 至本周六结束
func WeekWindow(now time.Time) models.DateRange {
	return WeekWindowFrom(time.Sunday)(now)
}

// WeekWindowFrom 以 first 为每周第一天的周窗口
func WeekWindowFrom(first time.Weekday) WindowFunc {
	return func(now time.Time) models.DateRange {
		back := (int(now.Weekday()) - int(first) + 7) % 7
		start := midnight(now).AddDate(0, 0, -back)
		return models.DateRange{Start: start, End: endBefore(start.AddDate(0, 0, 7))}
	}
}

// MonthWindow 本月第一天至最后一天结束
func MonthWindow(now time.Time) models.DateRange {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return models.DateRange{Start: start, End: endBefore(start.AddDate(0, 1, 0))}
}

// YearWindow 1月1日至12月31日结束
func YearWindow(now time.Time) models.DateRange {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return models.DateRange{Start: start, End: endBefore(start.AddDate(1, 0, 0))}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endBefore(t time.Time) time.Time {
	return t.Add(-time.Nanosecond)
}
