package services

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/wroger/gymtrack/internal/client/api"
	"github.com/wroger/gymtrack/internal/client/models"
	"github.com/wroger/gymtrack/internal/logging"
)

var (
	ErrNameRequired            = errors.New("name is required")
	ErrPasswordTooShort        = errors.New("new password must have at least 6 characters")
	ErrPasswordConfirmMismatch = errors.New("password confirmation does not match")
	ErrOldPasswordRequired     = errors.New("current password is required to set a new one")
)

// ProfileUpdate carries the field values of a profile edit. The password
// trio is optional as a unit: it only participates when the user typed a
// new password.
type ProfileUpdate struct {
	Name            string `validate:"required"`
	OldPassword     string `validate:"required_with=NewPassword"`
	NewPassword     string `validate:"omitempty,min=6"`
	ConfirmPassword string `validate:"required_with=NewPassword,eqfield=NewPassword"`
}

// ProfileService coordinates profile edits and avatar changes against
// the server and reconciles accepted changes back into the session.
//
// Neither flow is optimistic: the session only mutates after the server
// confirmed, so a failure leaves everything exactly as it was. Local
// validation failures never reach the network.
type ProfileService struct {
	client   api.Client
	sessions *SessionManager
	validate *validator.Validate
	log      logging.Logger
}

func NewProfileService(client api.Client, sessions *SessionManager, log logging.Logger) *ProfileService {
	return &ProfileService{
		client:   client,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With("component", "profile"),
	}
}

// UpdateProfile validates and submits a field update, then applies the
// server-authoritative fields (name) to the session. Email never
// changes here.
func (s *ProfileService) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	cur, epoch, ok := s.sessions.Snapshot()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := s.validateUpdate(upd); err != nil {
		return err
	}

	req := api.UpdateUserRequest{
		Name:        upd.Name,
		Password:    upd.NewPassword,
		OldPassword: upd.OldPassword,
	}
	if err := s.client.UpdateUser(ctx, req); err != nil {
		return err
	}

	cur.Name = upd.Name
	if err := s.sessions.UpdateSession(ctx, epoch, cur); err != nil {
		return err
	}

	s.log.Info(ctx, "profile updated", "user_id", cur.ID)
	return nil
}

// ChangeAvatar validates the candidate locally, uploads it, and applies
// the server-assigned reference to the session. An oversized or
// non-image candidate is rejected before any network call.
func (s *ProfileService) ChangeAvatar(ctx context.Context, candidate models.AvatarCandidate) error {
	cur, epoch, ok := s.sessions.Snapshot()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := candidate.Validate(); err != nil {
		return err
	}

	ref, err := s.client.UploadAvatar(ctx, candidate)
	if err != nil {
		return err
	}

	cur.Avatar = ref
	if err := s.sessions.UpdateSession(ctx, epoch, cur); err != nil {
		return err
	}

	s.log.Info(ctx, "avatar updated", "user_id", cur.ID, "avatar", ref)
	return nil
}

// validateUpdate maps validator failures onto the user-facing sentinel
// errors, first failure wins.
func (s *ProfileService) validateUpdate(upd ProfileUpdate) error {
	err := s.validate.Struct(upd)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	for _, fe := range verrs {
		switch fe.StructField() {
		case "Name":
			return ErrNameRequired
		case "NewPassword":
			return ErrPasswordTooShort
		case "ConfirmPassword":
			return ErrPasswordConfirmMismatch
		case "OldPassword":
			return ErrOldPasswordRequired
		}
	}
	return err
}
