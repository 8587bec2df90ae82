package util

import (
	"time"
)

// DateAtOffset resolves a seconds-since-midnight offset against an operating date.
func DateAtOffset(date time.Time, offsetSeconds int64) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	return midnight.Add(time.Duration(offsetSeconds) * time.Second)
}
