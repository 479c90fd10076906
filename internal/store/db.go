package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// User is a portal account row.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PredictionRecord is one saved prediction: the six input features plus
// the mood label the model returned.
type PredictionRecord struct {
	ID                 int64     `db:"id" json:"id"`
	UserID             int64     `db:"user_id" json:"user_id"`
	Age                float64   `db:"age" json:"age"`
	ScreenTime         float64   `db:"screen_time" json:"screen_time"`
	SleepHours         float64   `db:"sleep_hours" json:"sleep_hours"`
	StudyHours         float64   `db:"study_hours" json:"study_hours"`
	PhysicalActivity   float64   `db:"physical_activity" json:"physical_activity"`
	MentalClarityScore float64   `db:"mental_clarity_score" json:"mental_clarity_score"`
	Mood               string    `db:"mood" json:"mood"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// DB wraps the portal's relational store.
type DB struct {
	conn *sqlx.DB
}

// Open connects to the sqlite database at path and creates missing tables.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite handles one writer at a time; a single pooled connection
	// avoids SQLITE_BUSY under concurrent handlers.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.createTables(); err != nil {
		return nil, err
	}
	return db, nil
}

// Close releases the underlying connection.
func (db *DB) Close() error { return db.conn.Close() }

func (db *DB) createTables() error {
	userTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	historyTable := `
	CREATE TABLE IF NOT EXISTS prediction_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		age REAL NOT NULL,
		screen_time REAL NOT NULL,
		sleep_hours REAL NOT NULL,
		study_hours REAL NOT NULL,
		physical_activity REAL NOT NULL,
		mental_clarity_score REAL NOT NULL,
		mood TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.conn.Exec(userTable); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	if _, err := db.conn.Exec(historyTable); err != nil {
		return fmt.Errorf("failed to create prediction_history table: %w", err)
	}
	return nil
}

// CreateUser inserts an account. The password must already be hashed.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash, role string) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?)`,
		username, email, passwordHash, role)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return res.LastInsertId()
}

// GetUserByUsername fetches an account, or sql.ErrNoRows if absent.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := db.conn.GetContext(ctx, &u,
		`SELECT id, username, email, password, role, created_at FROM users WHERE username = ?`,
		username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SavePrediction appends one prediction to a user's history.
func (db *DB) SavePrediction(ctx context.Context, rec PredictionRecord) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO prediction_history
		 (user_id, age, screen_time, sleep_hours, study_hours, physical_activity, mental_clarity_score, mood)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.Age, rec.ScreenTime, rec.SleepHours, rec.StudyHours,
		rec.PhysicalActivity, rec.MentalClarityScore, rec.Mood)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// HistoryBetween returns all prediction rows in the inclusive calendar-day
// window, oldest first.
func (db *DB) HistoryBetween(ctx context.Context, start, end string) ([]PredictionRecord, error) {
	var rows []PredictionRecord
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT id, user_id, age, screen_time, sleep_hours, study_hours,
		        physical_activity, mental_clarity_score, mood, created_at
		 FROM prediction_history
		 WHERE DATE(created_at) BETWEEN ? AND ?
		 ORDER BY created_at, id`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction history: %w", err)
	}
	return rows, nil
}

// RecentHistory returns a user's latest predictions, newest first.
func (db *DB) RecentHistory(ctx context.Context, userID int64, limit int) ([]PredictionRecord, error) {
	var rows []PredictionRecord
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT id, user_id, age, screen_time, sleep_hours, study_hours,
		        physical_activity, mental_clarity_score, mood, created_at
		 FROM prediction_history
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent history: %w", err)
	}
	return rows, nil
}

// HistoryDateRange reports the earliest and latest calendar days with any
// history rows. Both are empty when the table is empty.
func (db *DB) HistoryDateRange(ctx context.Context) (string, string, error) {
	var minDate, maxDate sql.NullString
	err := db.conn.QueryRowContext(ctx,
		`SELECT MIN(DATE(created_at)), MAX(DATE(created_at)) FROM prediction_history`).
		Scan(&minDate, &maxDate)
	if err != nil {
		return "", "", fmt.Errorf("failed to query history date range: %w", err)
	}
	return minDate.String, maxDate.String, nil
}
