package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/wroger/gymtrack/internal/client/models"
	"github.com/wroger/gymtrack/internal/dbx"
)

const (
	keyUser         = "user"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// SQLiteRepository stores the session record in the local client
// database as a small key/value set: the user as a JSON blob, the
// tokens as plain values.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save writes the whole record in one transaction, so a failure midway
// never leaves a truncated session behind.
func (r *SQLiteRepository) Save(ctx context.Context, rec Record) error {
	userBlob, err := json.Marshal(rec.User)
	if err != nil {
		return fmt.Errorf("serialize session user: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range map[string][]byte{
			keyUser:         userBlob,
			keyAccessToken:  []byte(rec.AccessToken),
			keyRefreshToken: []byte(rec.RefreshToken),
		} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set session[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// Get loads the stored record. A missing or undecodable user blob means
// there is no session; only storage access failures surface as errors.
func (r *SQLiteRepository) Get(ctx context.Context) (*Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	defer rows.Close()

	values := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	userBlob, ok := values[keyUser]
	if !ok {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(userBlob, &user); err != nil {
		// Corrupted record: treat as no session.
		return nil, nil
	}
	if !user.Valid() {
		return nil, nil
	}

	return &Record{
		User:         user,
		AccessToken:  string(values[keyAccessToken]),
		RefreshToken: string(values[keyRefreshToken]),
	}, nil
}

// Clear removes the record. Clearing an empty store is not an error.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
