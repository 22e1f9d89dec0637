package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Punch is a locally recorded punch result. The server owns the shift
// state; this log only backs the "last action" line when the remote
// history is empty or unreachable.
type Punch struct {
	ID           int
	EmployeeID   string
	EmployeeName string
	Status       string
	PunchedAt    time.Time
	Latitude     *float64
	Longitude    *float64
	CreatedAt    time.Time
}

func (db *DB) InsertPunch(p *Punch) (int64, error) {
	result, err := db.Exec(
		`INSERT INTO punches (employee_id, employee_name, status, punched_at, latitude, longitude)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.EmployeeID, p.EmployeeName, p.Status,
		p.PunchedAt.UTC().Format(time.RFC3339),
		p.Latitude, p.Longitude,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting punch: %w", err)
	}
	return result.LastInsertId()
}

// LastPunch returns the employee's most recent local punch, or nil.
func (db *DB) LastPunch(employeeID string) (*Punch, error) {
	punches, err := db.queryPunches(
		`SELECT id, employee_id, employee_name, status, punched_at, latitude, longitude, created_at
		 FROM punches
		 WHERE employee_id = ?
		 ORDER BY punched_at DESC
		 LIMIT 1`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	if len(punches) == 0 {
		return nil, nil
	}
	return &punches[0], nil
}

func (db *DB) TodayPunches(employeeID string) ([]Punch, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	return db.queryPunches(
		`SELECT id, employee_id, employee_name, status, punched_at, latitude, longitude, created_at
		 FROM punches
		 WHERE employee_id = ? AND punched_at >= ? AND punched_at < ?
		 ORDER BY punched_at ASC`,
		employeeID,
		startOfDay.UTC().Format(time.RFC3339),
		endOfDay.UTC().Format(time.RFC3339),
	)
}

func (db *DB) queryPunches(query string, args ...interface{}) ([]Punch, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying punches: %w", err)
	}
	defer rows.Close()

	var punches []Punch
	for rows.Next() {
		var p Punch
		var lat, lon sql.NullFloat64
		var punchedStr, createdStr string

		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.EmployeeName, &p.Status,
			&punchedStr, &lat, &lon, &createdStr,
		); err != nil {
			return nil, fmt.Errorf("scanning punch: %w", err)
		}

		if lat.Valid {
			v := lat.Float64
			p.Latitude = &v
		}
		if lon.Valid {
			v := lon.Float64
			p.Longitude = &v
		}

		if t, err := time.Parse(time.RFC3339, punchedStr); err == nil {
			p.PunchedAt = t
		}
		if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
			p.CreatedAt = t
		}

		punches = append(punches, p)
	}

	return punches, rows.Err()
}
