package util

import (
	"time"

	"github.com/jinzhu/now"
)

// Datetime related utility functions.
// General convention for date functions - suffix Z if utc based.
const (
	DATETIME_FORMAT_YYYYMMDD_HYPHEN string = "2006-01-02"
	DATETIME_FORMAT_DB              string = "2006-01-02 15:04:05"
)

// TimeNowZ Return current time in UTC. Should be used everywhere to avoid local timezone.
func TimeNowZ() time.Time {
	return time.Now().UTC()
}

// TimeNowUnix Returns current epoch time.
func TimeNowUnix() int64 {
	return TimeNowZ().Unix()
}

// BeginningOfDayZ floors the given time to its UTC calendar day.
func BeginningOfDayZ(t time.Time) time.Time {
	return now.New(t.UTC()).BeginningOfDay()
}

// DaysBetweenZ - Whole days from b's day to a's day. UTC days have no DST,
// so the floored difference is always a multiple of 24h.
func DaysBetweenZ(a, b time.Time) int64 {
	return int64(BeginningOfDayZ(a).Sub(BeginningOfDayZ(b)).Hours() / 24)
}
