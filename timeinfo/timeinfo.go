// Package timeinfo derives calendar features from a trip's start timestamp.
//
// The hours from midnight to 04:00 are counted with the previous day, so a
// day runs from hour 4 to hour 28. This keeps taxi-usage patterns that run
// across midnight attached to the evening they belong to.
package timeinfo

import "time"

// Day classes.
const (
	Workday = "WD"
	Weekend = "WE"
	Holiday = "HOL"
)

// portugalHolidays lists national holidays as YYYYMMDD numbers, per
// timeanddate.com/holidays/portugal.
var portugalHolidays = map[int]bool{
	20130101: true, 20130329: true, 20130331: true, 20130425: true, 20130501: true,
	20130610: true, 20130815: true, 20131208: true, 20131225: true,
	20140101: true, 20140418: true, 20140420: true, 20140425: true, 20140501: true,
	20140610: true, 20140815: true, 20141208: true, 20141225: true,
}

// Stamp carries the calendar features decoded from a Unix timestamp.
type Stamp struct {
	Unix    int64
	NumDate int     // YYYYMMDD, early-morning hours counted with the previous day
	WeekDay int     // 0=Sunday .. 6=Saturday
	DayBusy string  // Workday, Weekend or Holiday
	DayHour float64 // hours, in [4, 28)
}

// Decode interprets a Unix timestamp in UTC. Weekends take precedence over
// holidays in the day class.
func Decode(unix int64) Stamp {
	when := time.Unix(unix, 0).UTC()
	weekday := int(when.Weekday())
	dayhour := float64(when.Hour()) + float64(when.Minute())/60 + float64(when.Second())/3600

	day := when
	if dayhour < 4 {
		dayhour += 24
		weekday = (weekday + 6) % 7
		day = when.Add(-24 * time.Hour)
	}
	numdate := day.Year()*10000 + int(day.Month())*100 + day.Day()

	busy := Workday
	switch {
	case weekday == 0 || weekday == 6:
		busy = Weekend
	case portugalHolidays[numdate]:
		busy = Holiday
	}

	return Stamp{Unix: unix, NumDate: numdate, WeekDay: weekday, DayBusy: busy, DayHour: dayhour}
}
