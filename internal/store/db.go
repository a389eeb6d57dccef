package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-insight-engine/internal/model"
)

var db *sql.DB

// InitDB opens the SQLite database and creates the schema.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	analysisTable := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		spec TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS analysis_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	resultTable := `
	CREATE TABLE IF NOT EXISTS analysis_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT,
		operation TEXT,
		result TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{analysisTable, errorTable, resultTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveJob stores a new analysis job in the pending state.
func SaveJob(jobID string, spec model.AnalysisJobSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO analyses (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, specJSON, model.StatusPending, now, now)
	return err
}

// SaveJobError records an error for a job.
func SaveJobError(jobID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO analysis_errors (job_id, error_message, created_at) VALUES (?, ?, ?)`,
		jobID, err.Error(), now)
	return e
}

// GetJobErrors returns the recorded errors for a job, newest first.
func GetJobErrors(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM analysis_errors WHERE job_id = ? ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"message":   msg,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// SaveResult stores one operation's output for a job. The payload is kept
// as JSON so every result shape shares one table.
func SaveResult(jobID string, operation model.Operation, payload interface{}) error {
	resultJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO analysis_results (job_id, operation, result, created_at) VALUES (?, ?, ?, ?)`,
		jobID, string(operation), resultJSON, now)
	return err
}

// GetResults returns every stored result for a job in insertion order.
func GetResults(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT operation, result, created_at FROM analysis_results WHERE job_id = ? ORDER BY id ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var operation, resultJSON string
		var createdAt time.Time
		if err := rows.Scan(&operation, &resultJSON, &createdAt); err != nil {
			return nil, err
		}
		var payload interface{}
		if err := json.Unmarshal([]byte(resultJSON), &payload); err != nil {
			payload = resultJSON
		}
		out = append(out, map[string]interface{}{
			"operation": operation,
			"result":    payload,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// ListJobs returns all jobs with basic info, newest first.
func ListJobs() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return jobs, rows.Err()
}

// GetJob fetches the full job spec and status.
func GetJob(jobID string) (map[string]interface{}, error) {
	var specJSON string
	var status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM analyses WHERE id = ?`, jobID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.AnalysisJobSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        jobID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// UpdateJobStatus moves a job through its lifecycle.
func UpdateJobStatus(jobID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE analyses SET status = ?, updated_at = ? WHERE id = ?`, status, now, jobID)
	return err
}

// DeleteJob removes a job along with its errors and results.
func DeleteJob(jobID string) error {
	for _, stmt := range []string{
		`DELETE FROM analysis_results WHERE job_id = ?`,
		`DELETE FROM analysis_errors WHERE job_id = ?`,
		`DELETE FROM analyses WHERE id = ?`,
	} {
		if _, err := db.Exec(stmt, jobID); err != nil {
			return err
		}
	}
	return nil
}
