package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wroger/gymtrack/internal/client/api"
	"github.com/wroger/gymtrack/internal/client/models"
	"github.com/wroger/gymtrack/internal/client/services"
)

type fakeSessions struct {
	user      models.User
	loggedIn  bool
	signInErr error
	signUpErr error

	signedOut  bool
	lastEmail  string
	lastName   string
	lastPassword string
}

func (f *fakeSessions) Restore(ctx context.Context) services.State {
	if f.loggedIn {
		return services.StateAuthenticated
	}
	return services.StateUnauthenticated
}

func (f *fakeSessions) SignIn(ctx context.Context, email, password string) error {
	f.lastEmail = email
	f.lastPassword = password
	if f.signInErr != nil {
		return f.signInErr
	}
	f.loggedIn = true
	return nil
}

func (f *fakeSessions) SignUp(ctx context.Context, name, email, password string) error {
	f.lastName = name
	f.lastEmail = email
	f.lastPassword = password
	return f.signUpErr
}

func (f *fakeSessions) SignOut(ctx context.Context) {
	f.signedOut = true
	f.loggedIn = false
}

func (f *fakeSessions) Current() (models.User, bool) {
	if !f.loggedIn {
		return models.User{}, false
	}
	return f.user, true
}

type fakeProfile struct {
	lastUpdate services.ProfileUpdate
	lastAvatar models.AvatarCandidate
	updateErr  error
	avatarErr  error
}

func (f *fakeProfile) UpdateProfile(ctx context.Context, upd services.ProfileUpdate) error {
	f.lastUpdate = upd
	return f.updateErr
}

func (f *fakeProfile) ChangeAvatar(ctx context.Context, candidate models.AvatarCandidate) error {
	f.lastAvatar = candidate
	return f.avatarErr
}

type fakeTraining struct {
	groups    []string
	exercises []models.Exercise
	exercise  *models.Exercise
	history   []models.HistoryDay
	err       error
}

func (f *fakeTraining) Groups(ctx context.Context) ([]string, error) {
	return f.groups, f.err
}

func (f *fakeTraining) ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error) {
	return f.exercises, f.err
}

func (f *fakeTraining) Exercise(ctx context.Context, id int) (*models.Exercise, error) {
	return f.exercise, f.err
}

func (f *fakeTraining) History(ctx context.Context) ([]models.HistoryDay, error) {
	return f.history, f.err
}

// stubInput feeds canned answers through the text and password seams.
func stubInput(t *testing.T, answers []string, passwords []string) {
	t.Helper()
	origText, origPassword := getSimpleText, getPassword
	ti, pi := 0, 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		require.Less(t, ti, len(answers), "unexpected text prompt: %s", prompt)
		answer := answers[ti]
		ti++
		return answer, nil
	}
	getPassword = func(prompt string, w io.Writer) ([]byte, error) {
		require.Less(t, pi, len(passwords), "unexpected password prompt: %s", prompt)
		answer := passwords[pi]
		pi++
		return []byte(answer), nil
	}
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPassword
	})
}

func newTestApp(sessions *fakeSessions, profile *fakeProfile, training *fakeTraining) *App {
	return &App{
		sessions: sessions,
		profile:  profile,
		training: training,
		reader:   bufio.NewReader(strings.NewReader("")),
	}
}

func TestLoginSuccess(t *testing.T) {
	sessions := &fakeSessions{user: models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}}
	app := newTestApp(sessions, nil, nil)
	stubInput(t, []string{"ana@example.com"}, []string{"secret"})
	out := captureOutput(t)

	err := app.Login(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", sessions.lastEmail)
	assert.Equal(t, "secret", sessions.lastPassword)
	assert.Contains(t, *out, "Welcome, Ana!")
}

func TestLoginApplicationErrorShownVerbatim(t *testing.T) {
	sessions := &fakeSessions{signInErr: &api.APIError{
		Kind:    api.KindApplication,
		Message: "E-mail or password incorrect.",
		Status:  400,
	}}
	app := newTestApp(sessions, nil, nil)
	stubInput(t, []string{"ana@example.com"}, []string{"bad"})
	out := captureOutput(t)

	err := app.Login(context.Background())

	require.Error(t, err)
	assert.Contains(t, *out, "E-mail or password incorrect.")
}

func TestLoginGenericErrorHidden(t *testing.T) {
	sessions := &fakeSessions{signInErr: &api.APIError{Kind: api.KindGeneric, Status: 500}}
	app := newTestApp(sessions, nil, nil)
	stubInput(t, []string{"ana@example.com"}, []string{"secret"})
	out := captureOutput(t)

	err := app.Login(context.Background())

	require.Error(t, err)
	assert.Contains(t, *out, genericErrorMessage)
	for _, line := range *out {
		assert.NotContains(t, line, "500", "status details must not leak to the user")
	}
}

func TestRegister(t *testing.T) {
	sessions := &fakeSessions{}
	app := newTestApp(sessions, nil, nil)
	stubInput(t, []string{"Ana", "ana@example.com"}, []string{"secret"})
	out := captureOutput(t)

	err := app.Register(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Ana", sessions.lastName)
	assert.Equal(t, "ana@example.com", sessions.lastEmail)
	assert.False(t, sessions.loggedIn, "registration must not establish a session")
	assert.Contains(t, *out, "Account created. You can now log in.")
}

func TestLogout(t *testing.T) {
	sessions := &fakeSessions{loggedIn: true, user: models.User{ID: "u1", Email: "a@b.c"}}
	app := newTestApp(sessions, nil, nil)
	out := captureOutput(t)

	require.NoError(t, app.Logout(context.Background()))

	assert.True(t, sessions.signedOut)
	assert.Contains(t, *out, "Logged out.")
}

func TestProfileNameOnly(t *testing.T) {
	sessions := &fakeSessions{loggedIn: true, user: models.User{ID: "u1", Name: "Ana", Email: "a@b.c"}}
	profile := &fakeProfile{}
	app := newTestApp(sessions, profile, nil)
	stubInput(t, []string{"Ana Silva", "n"}, nil)
	out := captureOutput(t)

	err := app.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", profile.lastUpdate.Name)
	assert.Empty(t, profile.lastUpdate.OldPassword)
	assert.Empty(t, profile.lastUpdate.NewPassword)
	assert.Contains(t, *out, "Profile updated.")
}

func TestProfileKeepsNameWhenBlank(t *testing.T) {
	sessions := &fakeSessions{loggedIn: true, user: models.User{ID: "u1", Name: "Ana", Email: "a@b.c"}}
	profile := &fakeProfile{}
	app := newTestApp(sessions, profile, nil)
	stubInput(t, []string{"", "n"}, nil)
	captureOutput(t)

	require.NoError(t, app.Profile(context.Background()))

	assert.Equal(t, "Ana", profile.lastUpdate.Name)
}

func TestProfilePasswordChange(t *testing.T) {
	sessions := &fakeSessions{loggedIn: true, user: models.User{ID: "u1", Name: "Ana", Email: "a@b.c"}}
	profile := &fakeProfile{}
	app := newTestApp(sessions, profile, nil)
	stubInput(t, []string{"Ana", "y"}, []string{"oldpass", "newpass1", "newpass1"})
	captureOutput(t)

	require.NoError(t, app.Profile(context.Background()))

	assert.Equal(t, "oldpass", profile.lastUpdate.OldPassword)
	assert.Equal(t, "newpass1", profile.lastUpdate.NewPassword)
	assert.Equal(t, "newpass1", profile.lastUpdate.ConfirmPassword)
}

func TestProfileValidationErrorShown(t *testing.T) {
	sessions := &fakeSessions{loggedIn: true, user: models.User{ID: "u1", Name: "Ana", Email: "a@b.c"}}
	profile := &fakeProfile{updateErr: services.ErrPasswordConfirmMismatch}
	app := newTestApp(sessions, profile, nil)
	stubInput(t, []string{"Ana", "y"}, []string{"oldpass", "newpass1", "newpass2"})
	out := captureOutput(t)

	err := app.Profile(context.Background())

	require.Error(t, err)
	assert.Contains(t, *out, services.ErrPasswordConfirmMismatch.Error())
}

func TestProfileRequiresSession(t *testing.T) {
	app := newTestApp(&fakeSessions{}, &fakeProfile{}, nil)
	out := captureOutput(t)

	require.NoError(t, app.Profile(context.Background()))

	assert.Contains(t, *out, "Not logged in.")
}

func TestAvatarMissingFile(t *testing.T) {
	profile := &fakeProfile{}
	app := newTestApp(&fakeSessions{loggedIn: true, user: models.User{ID: "u1", Email: "a@b.c"}}, profile, nil)
	captureOutput(t)

	err := app.Avatar(context.Background(), "/nonexistent/image.png")

	require.Error(t, err)
	assert.Empty(t, profile.lastAvatar.Path, "upload must not be attempted")
}

func TestGroupsPrinted(t *testing.T) {
	training := &fakeTraining{groups: []string{"back", "chest"}}
	app := newTestApp(&fakeSessions{loggedIn: true}, nil, training)
	out := captureOutput(t)

	require.NoError(t, app.Groups(context.Background()))

	assert.Contains(t, *out, "Groups: back, chest")
}

func TestExercisesListed(t *testing.T) {
	training := &fakeTraining{exercises: []models.Exercise{
		{ID: 1, Name: "Deadlift", Series: 3, Repetitions: 12},
	}}
	app := newTestApp(&fakeSessions{loggedIn: true}, nil, training)
	out := captureOutput(t)

	require.NoError(t, app.Exercises(context.Background(), "back"))

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Deadlift")
	assert.Contains(t, joined, "3 x 12")
}

func TestHistoryGroupedByDay(t *testing.T) {
	training := &fakeTraining{history: []models.HistoryDay{
		{Title: "26.08.22", Data: []models.HistoryEntry{
			{ID: 1, Name: "Deadlift", Group: "back", Hour: "08:56"},
		}},
	}}
	app := newTestApp(&fakeSessions{loggedIn: true}, nil, training)
	out := captureOutput(t)

	require.NoError(t, app.History(context.Background()))

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "26.08.22")
	assert.Contains(t, joined, "Deadlift")
}

func TestTrainingErrorUsesGenericMessage(t *testing.T) {
	training := &fakeTraining{err: &api.APIError{Kind: api.KindGeneric}}
	app := newTestApp(&fakeSessions{loggedIn: true}, nil, training)
	out := captureOutput(t)

	err := app.Groups(context.Background())

	require.Error(t, err)
	assert.Contains(t, *out, genericErrorMessage)
}
