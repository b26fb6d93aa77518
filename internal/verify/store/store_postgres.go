package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"peselgate/internal/verify"
)

// PostgresStore persists verification results with an upsert per subject
// hash. Expiry is enforced at read time against the stored checked_at.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

type PostgresOption func(*PostgresStore)

// WithPostgresClock overrides the time source, used by tests.
func WithPostgresClock(now func() time.Time) PostgresOption {
	return func(s *PostgresStore) {
		s.now = now
	}
}

func NewPostgresStore(db *sql.DB, ttl time.Duration, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSchema creates the results table when it does not exist. Called
// once at startup; real migrations would replace this in a larger system.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS verification_results (
			subject_hash  TEXT PRIMARY KEY,
			valid         BOOLEAN NOT NULL,
			reason        TEXT NOT NULL DEFAULT '',
			gender        TEXT NOT NULL DEFAULT '',
			date_of_birth TEXT NOT NULL DEFAULT '',
			century_band  TEXT NOT NULL DEFAULT '',
			checked_at    TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindResult(ctx context.Context, subjectHash string) (*verify.Result, error) {
	cutoff := s.now().Add(-s.ttl)

	var result verify.Result
	err := s.db.QueryRowContext(ctx, `
		SELECT subject_hash, valid, reason, gender, date_of_birth, century_band, checked_at
		FROM verification_results
		WHERE subject_hash = $1 AND checked_at > $2`,
		subjectHash, cutoff,
	).Scan(
		&result.SubjectHash,
		&result.Valid,
		&result.Reason,
		&result.Gender,
		&result.DateOfBirth,
		&result.CenturyBand,
		&result.CheckedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, verify.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find result: %w", err)
	}
	return &result, nil
}

func (s *PostgresStore) SaveResult(ctx context.Context, result *verify.Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO verification_results
			(subject_hash, valid, reason, gender, date_of_birth, century_band, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (subject_hash) DO UPDATE SET
			valid = EXCLUDED.valid,
			reason = EXCLUDED.reason,
			gender = EXCLUDED.gender,
			date_of_birth = EXCLUDED.date_of_birth,
			century_band = EXCLUDED.century_band,
			checked_at = EXCLUDED.checked_at`,
		result.SubjectHash,
		result.Valid,
		string(result.Reason),
		result.Gender,
		result.DateOfBirth,
		result.CenturyBand,
		result.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}
