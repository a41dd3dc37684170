// Package tripstore persists derived trip records in SQLite and answers
// the aggregate queries behind the stats command.
package tripstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/praynham/taxi-predict/model"
	_ "modernc.org/sqlite" // SQLite driver
)

// Repository defines the interface for trip persistence and retrieval.
type Repository interface {
	Init() error
	Load(records []model.TripSummary) error
	Close() error
	CountTrips() (int, error)
	GetOutlierBreakdown() ([]model.QueryStat, error)
	GetDayBreakdown() ([]model.QueryStat, error)
	GetSummaryStats() (model.QueryStat, error)
	GetLongestTrips(n int) ([]model.TripSummary, error)
}

// TripStore handles all SQLite interactions for derived taxi-trip data.
type TripStore struct {
	db *sql.DB
}

func NewTripStore(dbPath string) (*TripStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &TripStore{db: db}
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// Init creates the necessary tables and indexes.
func (s *TripStore) Init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		call_type TEXT NOT NULL,
		origin_call TEXT,
		origin_stand TEXT,
		taxi_id TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		day_type TEXT,
		week_day INTEGER NOT NULL,
		day_busy TEXT NOT NULL,
		day_hour REAL NOT NULL,
		missing_data INTEGER NOT NULL,
		drive_dist REAL NOT NULL,
		trip_dist REAL NOT NULL,
		trip_time REAL NOT NULL,
		avg_speed REAL NOT NULL,
		trip_speed REAL NOT NULL,
		outlier TEXT NOT NULL,
		ingested_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_outlier ON trips(outlier);
	CREATE INDEX IF NOT EXISTS idx_day_busy ON trips(day_busy);
	CREATE INDEX IF NOT EXISTS idx_taxi_id ON trips(taxi_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load performs a bulk UPSERT operation within a transaction.
func (s *TripStore) Load(records []model.TripSummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO trips
		(trip_id, call_type, origin_call, origin_stand, taxi_id, timestamp, day_type,
		 week_day, day_busy, day_hour, missing_data,
		 drive_dist, trip_dist, trip_time, avg_speed, trip_speed, outlier, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.TripID, r.CallType, r.OriginCall, r.OriginStand, r.TaxiID, r.Timestamp, r.DayType,
			r.WeekDay, r.DayBusy, r.DayHour, r.MissingData,
			r.DriveDist, r.TripDist, r.TripTime, r.AvgSpeed, r.TripSpeed, r.Outlier,
			r.IngestedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip %s: %w", r.TripID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetOutlierBreakdown summarises trips per data-quality class.
func (s *TripStore) GetOutlierBreakdown() ([]model.QueryStat, error) {
	query := `
		SELECT outlier,
			COUNT(*) as count,
			AVG(drive_dist) as avg_drive_dist,
			AVG(trip_time) as avg_trip_time
		FROM trips
		GROUP BY outlier
		ORDER BY count DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.QueryStat
	for rows.Next() {
		var outlier string
		var count int
		var avgDrive, avgTime sql.NullFloat64

		if err := rows.Scan(&outlier, &count, &avgDrive, &avgTime); err != nil {
			return nil, err
		}

		results = append(results, model.QueryStat{
			"outlier":       outlier,
			"count":         count,
			"avg_drive_km":  fmt.Sprintf("%.3f", avgDrive.Float64/1000),
			"avg_trip_time": fmt.Sprintf("%.2f min", avgTime.Float64),
		})
	}

	return results, rows.Err()
}

// GetDayBreakdown summarises trips per day class (workday/weekend/holiday).
func (s *TripStore) GetDayBreakdown() ([]model.QueryStat, error) {
	query := `
		SELECT day_busy,
			COUNT(*) as count,
			AVG(drive_dist) as avg_drive_dist,
			AVG(avg_speed) as avg_speed
		FROM trips
		GROUP BY day_busy
		ORDER BY count DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.QueryStat
	for rows.Next() {
		var dayBusy string
		var count int
		var avgDrive, avgSpeed sql.NullFloat64

		if err := rows.Scan(&dayBusy, &count, &avgDrive, &avgSpeed); err != nil {
			return nil, err
		}

		results = append(results, model.QueryStat{
			"day_busy":     dayBusy,
			"count":        count,
			"avg_drive_km": fmt.Sprintf("%.3f", avgDrive.Float64/1000),
			"avg_speed":    fmt.Sprintf("%.1f km/h", avgSpeed.Float64),
		})
	}

	return results, rows.Err()
}

// GetSummaryStats calculates overall dataset statistics.
func (s *TripStore) GetSummaryStats() (model.QueryStat, error) {
	stats := make(model.QueryStat)

	var totalTrips int
	var avgDrive, maxDrive sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT COUNT(*), AVG(drive_dist), MAX(drive_dist)
		FROM trips
	`).Scan(&totalTrips, &avgDrive, &maxDrive)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	stats["total_trips"] = totalTrips
	stats["avg_drive_km"] = fmt.Sprintf("%.3f km", avgDrive.Float64/1000)
	stats["max_drive_km"] = fmt.Sprintf("%.3f km", maxDrive.Float64/1000)

	var accepted, missing int
	s.db.QueryRow(`SELECT COUNT(*) FROM trips WHERE outlier = 'ACCEPTED'`).Scan(&accepted)
	s.db.QueryRow(`SELECT COUNT(*) FROM trips WHERE missing_data = 1`).Scan(&missing)

	stats["accepted_trips"] = accepted
	stats["missing_data_trips"] = missing
	if totalTrips > 0 {
		stats["percent_accepted"] = fmt.Sprintf("%.1f%%", float64(accepted)*100.0/float64(totalTrips))
	} else {
		stats["percent_accepted"] = "0.0%"
	}

	var avgSpeed, maxSpeed sql.NullFloat64
	s.db.QueryRow(`
		SELECT AVG(avg_speed), MAX(avg_speed)
		FROM trips WHERE outlier = 'ACCEPTED'
	`).Scan(&avgSpeed, &maxSpeed)

	stats["avg_speed_accepted"] = fmt.Sprintf("%.1f km/h", avgSpeed.Float64)
	stats["max_speed_accepted"] = fmt.Sprintf("%.1f km/h", maxSpeed.Float64)

	return stats, nil
}

// GetLongestTrips retrieves the n trips with the greatest driven distance.
func (s *TripStore) GetLongestTrips(n int) ([]model.TripSummary, error) {
	query := `
		SELECT trip_id, call_type, origin_call, origin_stand, taxi_id, timestamp, day_type,
			week_day, day_busy, day_hour, missing_data,
			drive_dist, trip_dist, trip_time, avg_speed, trip_speed, outlier, ingested_at
		FROM trips
		ORDER BY drive_dist DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.TripSummary
	for rows.Next() {
		var r model.TripSummary
		var ingestedAt string

		err := rows.Scan(
			&r.TripID, &r.CallType, &r.OriginCall, &r.OriginStand, &r.TaxiID, &r.Timestamp, &r.DayType,
			&r.WeekDay, &r.DayBusy, &r.DayHour, &r.MissingData,
			&r.DriveDist, &r.TripDist, &r.TripTime, &r.AvgSpeed, &r.TripSpeed, &r.Outlier,
			&ingestedAt,
		)
		if err != nil {
			return nil, err
		}

		r.IngestedAt, _ = time.Parse(time.RFC3339, ingestedAt)
		records = append(records, r)
	}

	return records, rows.Err()
}

// CountTrips returns the total number of records in the trips table.
func (s *TripStore) CountTrips() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trips").Scan(&count)
	return count, err
}

// GetTripDriveDist returns the driven distance of a trip by its id.
func (s *TripStore) GetTripDriveDist(id string) (float64, error) {
	var dist float64
	err := s.db.QueryRow("SELECT drive_dist FROM trips WHERE trip_id = ?", id).Scan(&dist)
	return dist, err
}

func (s *TripStore) Close() error {
	return s.db.Close()
}
