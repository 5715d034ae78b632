package models

import "time"

// DateRange 时间区间，两端均包含
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains 判断时间是否落在区间内（含端点）
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Validate 结束时间早于开始时间视为无效
func (r DateRange) Validate() error {
	if r.End.Before(r.Start) {
		return invalid("date_range", ErrInvalidDateRange)
	}
	return nil
}

// DayRange 按天构造区间，结束日包含整天
func DayRange(start, end time.Time) DateRange {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	return DateRange{Start: s, End: e.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}
