package domain

import "time"

// DateOnly обнуляет время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsDateInPast сообщает, что дата строго раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}

// WindowContains проверяет вложенность окна [from, to] в окно [outerFrom, outerTo] (границы включены)
func WindowContains(outerFrom, outerTo, from, to time.Time) bool {
	return !DateOnly(from).Before(DateOnly(outerFrom)) && !DateOnly(to).After(DateOnly(outerTo))
}
