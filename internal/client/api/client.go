package api

import (
	"context"

	"github.com/wroger/gymtrack/internal/client/models"
)

// UpdateUserRequest carries a profile update. Password fields are only
// serialized when the user is changing the password.
type UpdateUserRequest struct {
	Name        string `json:"name"`
	Password    string `json:"password,omitempty"`
	OldPassword string `json:"old_password,omitempty"`
}

// Client is the surface the services consume. RESTClient is the real
// implementation; tests substitute fakes.
type Client interface {
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignUp(ctx context.Context, name, email, password string) error
	UpdateUser(ctx context.Context, req UpdateUserRequest) error
	UploadAvatar(ctx context.Context, candidate models.AvatarCandidate) (string, error)

	Groups(ctx context.Context) ([]string, error)
	ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error)
	Exercise(ctx context.Context, id int) (*models.Exercise, error)
	History(ctx context.Context) ([]models.HistoryDay, error)

	SetTokens(access, refresh string)
	Tokens() (access, refresh string)
	ClearTokens()
}
