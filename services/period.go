package services

import (
	"time"

	"shop-queue/models"
)

// Period labels used in cache keys, metrics and log fields.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Periods holds the three canonical dashboard ranges resolved from a single
// reference instant.
type Periods struct {
	Today models.DateRange
	Week  models.DateRange
	Month models.DateRange
}

// ResolvePeriods computes the today/week/month ranges for ref, in ref's
// location. Today spans local midnight to 23:59:59, the week starts on
// Sunday and spans 7 days, the month runs from the 1st to the last calendar
// day inclusive.
func ResolvePeriods(ref time.Time) Periods {
	loc := ref.Location()
	year, month, day := ref.Date()

	todayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)

	weekStart := todayStart.AddDate(0, 0, -int(ref.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	return Periods{
		Today: models.DateRange{From: todayStart, To: endOfDay(todayStart)},
		Week:  models.DateRange{From: weekStart, To: endOfDay(weekEnd)},
		Month: models.DateRange{From: monthStart, To: endOfDay(monthEnd)},
	}
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 0, t.Location())
}
