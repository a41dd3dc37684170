package model

import "time"

// TripRecord is one row of the Porto taxi CSV, fields kept verbatim as text.
type TripRecord struct {
	TripID      string `csv:"TRIP_ID"`
	CallType    string `csv:"CALL_TYPE"`
	OriginCall  string `csv:"ORIGIN_CALL"`
	OriginStand string `csv:"ORIGIN_STAND"`
	TaxiID      string `csv:"TAXI_ID"`
	Timestamp   string `csv:"TIMESTAMP"`
	DayType     string `csv:"DAY_TYPE"`
	MissingData string `csv:"MISSING_DATA"`
	Polyline    string `csv:"POLYLINE"`
}

// TripSummary is the normalized per-trip record stored in the trips table.
type TripSummary struct {
	TripID      string
	CallType    string
	OriginCall  string
	OriginStand string
	TaxiID      string
	Timestamp   int64
	DayType     string
	WeekDay     int     // 0=Sunday .. 6=Saturday
	DayBusy     string  // WD, WE or HOL
	DayHour     float64 // hours, 4..28
	MissingData bool
	DriveDist   float64 // metres
	TripDist    float64 // metres
	TripTime    float64 // minutes
	AvgSpeed    float64 // km/h
	TripSpeed   float64 // km/h
	Outlier     string
	IngestedAt  time.Time
}

// SummaryRow is one line of the flattened summary file. Values are
// pre-formatted: distances in km to 3 decimals, time in minutes to 2.
type SummaryRow struct {
	TripID      string `csv:"TRIP_ID"`
	CallType    string `csv:"CALL_TYPE"`
	OriginCall  string `csv:"ORIGIN_CALL"`
	OriginStand string `csv:"ORIGIN_STAND"`
	TaxiID      string `csv:"TAXI_ID"`
	Timestamp   string `csv:"TIMESTAMP"`
	DayType     string `csv:"DAY_TYPE"`
	MissingData string `csv:"MISSING_DATA"`
	DriveDist   string `csv:"DRIVE_DIST"`
	TripDist    string `csv:"TRIP_DIST"`
	TripTime    string `csv:"TRIP_TIME"`
}

// PreparedRow is one line of the prepared file for statistical analysis.
// Distances are in metres (0 decimals), coordinates to 6 decimals; the
// lon/lat pairs are blank when the trip has no waypoint at that mark.
type PreparedRow struct {
	TripID      string `csv:"TRIP_ID"`
	CallType    string `csv:"CALL_TYPE"`
	OriginCall  string `csv:"ORIGIN_CALL"`
	OriginStand string `csv:"ORIGIN_STAND"`
	TaxiID      string `csv:"TAXI_ID"`
	Timestamp   string `csv:"TIMESTAMP"`
	DayType     string `csv:"DAY_TYPE"`
	WeekDay     string `csv:"WEEK_DAY"`
	DayBusy     string `csv:"DAY_BUSY"`
	DayHour     string `csv:"DAY_HOUR"`
	MissingData string `csv:"MISSING_DATA"`
	DriveDist   string `csv:"DRIVE_DIST"`
	TripDist    string `csv:"TRIP_DIST"`
	TripTime    string `csv:"TRIP_TIME"`
	LonStart    string `csv:"LON_START"`
	LatStart    string `csv:"LAT_START"`
	Lon02       string `csv:"LON_02"`
	Lat02       string `csv:"LAT_02"`
	Lon05       string `csv:"LON_05"`
	Lat05       string `csv:"LAT_05"`
	Lon10       string `csv:"LON_10"`
	Lat10       string `csv:"LAT_10"`
	LonFinish   string `csv:"LON_FINISH"`
	LatFinish   string `csv:"LAT_FINISH"`
}

// QueryStat is a generic map used for returning summary statistics.
type QueryStat map[string]interface{}
