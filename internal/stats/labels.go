package stats

import "fmt"

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// WeekdayName возвращает английское название дня недели, 0 — понедельник.
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday >= len(weekdayNames) {
		return weekdayNames[0]
	}
	return weekdayNames[weekday]
}

// MonthName возвращает английское название месяца, 1 — январь.
func MonthName(month int) string {
	if month < 1 || month > len(monthNames) {
		return monthNames[0]
	}
	return monthNames[month-1]
}

// FormatHour форматирует час в 12-часовом виде: 0 -> "12 AM", 15 -> "3 PM".
func FormatHour(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, suffix)
}
