package session

import (
	"context"

	"github.com/wroger/gymtrack/internal/client/models"
)

// Record is the durable form of one stored session: the user profile
// plus the bearer tokens needed to resume it.
type Record struct {
	User         models.User
	AccessToken  string
	RefreshToken string
}

// Repository persists at most one session record.
//
// Save replaces any prior record atomically; a failed save leaves the
// previous record intact. Get returns (nil, nil) when no usable record
// exists; an undecodable record counts as absent, never as an error, so
// corrupted local state logs the user out instead of locking them out.
// Clear is idempotent.
type Repository interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context) (*Record, error)
	Clear(ctx context.Context) error
}
