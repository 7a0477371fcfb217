package models

import (
	"strconv"
	"strings"
	"time"
)

// excelEpochDay is the serial day number of the Unix epoch in the 1900 date
// system. Serial values below it are treated as noise rather than dates.
const excelEpochDay = 25569

var sheetTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSheetDate normalizes the date shapes seen in sheet cells and on the
// wire (ISO timestamps, plain dates, dd.mm.yyyy variants, Excel serials) to
// the canonical YYYY-MM-DD form. The time of day is dropped.
func ParseSheetDate(raw string) (string, bool) {
	t, ok := ParseSheetTime(raw)
	if !ok {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// ParseSheetTime parses the same shapes as ParseSheetDate but keeps the time
// of day when the value carries one. Used where timestamps are compared with
// a tolerance rather than truncated to days.
func ParseSheetTime(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial < excelEpochDay {
			return time.Time{}, false
		}
		base := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		return base.Add(time.Duration(serial * float64(24*time.Hour))), true
	}
	for _, layout := range sheetTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return parseDayFirst(value)
}

// parseDayFirst handles dd.mm.yyyy, dd/mm/yyyy and dd-mm-yyyy cells, with a
// year-first fallback for yyyy.mm.dd style values.
func parseDayFirst(value string) (time.Time, bool) {
	datePart := strings.Fields(value)[0]
	parts := strings.FieldsFunc(datePart, func(r rune) bool {
		return r == '.' || r == '/' || r == '-'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}
	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	third, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	day, month, year := first, second, third
	if len(parts[0]) == 4 {
		day, month, year = third, second, first
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
