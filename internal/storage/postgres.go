package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/roundsight/predictor/models"
)

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Postgres keeps one snapshot row per logical session.
type Postgres struct {
	db      *sql.DB
	session string
}

// NewPostgres opens a connection, verifies it with retried pings and
// ensures the snapshot table exists.
func NewPostgres(params ConnectionParams, session string) (*Postgres, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Retry the ping with exponential backoff; fresh deployments often
	// race the database container.
	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(db.Ping, backoffStrategy); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{db: db, session: session}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analyzer_snapshots (
			session TEXT PRIMARY KEY,
			state JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

// Load reads the session's snapshot row. No row is first-run state.
func (p *Postgres) Load() (*models.Snapshot, error) {
	var state []byte
	err := p.db.QueryRow(`
		SELECT state
		FROM analyzer_snapshots
		WHERE session = $1
	`, p.session).Scan(&state)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EmptySnapshot(), nil
		}
		return nil, fmt.Errorf("loading snapshot row: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(state, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot row: %w", err)
	}
	if snap.PatternScores == nil {
		snap.PatternScores = make(map[models.PatternKind]models.PatternStats)
	}
	return &snap, nil
}

// Save upserts the session's snapshot row.
func (p *Postgres) Save(snap *models.Snapshot) error {
	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = p.db.Exec(`
		INSERT INTO analyzer_snapshots (session, state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session)
		DO UPDATE SET
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`, p.session, state, time.Now())

	return err
}

// Close releases the database connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}
