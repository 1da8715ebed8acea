package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/wroger/gymtrack/internal/client/api"
	"github.com/wroger/gymtrack/internal/client/config"
	"github.com/wroger/gymtrack/internal/client/models"
	"github.com/wroger/gymtrack/internal/client/repositories/session"
	"github.com/wroger/gymtrack/internal/client/services"
	"github.com/wroger/gymtrack/internal/client/storage"
	"github.com/wroger/gymtrack/internal/filex"
	"github.com/wroger/gymtrack/internal/logging"
)

// sessionService, profileService, and trainingService are the slices of
// the services the CLI consumes. Tests substitute stubs.
type sessionService interface {
	Restore(ctx context.Context) services.State
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, name, email, password string) error
	SignOut(ctx context.Context)
	Current() (models.User, bool)
}

type profileService interface {
	UpdateProfile(ctx context.Context, upd services.ProfileUpdate) error
	ChangeAvatar(ctx context.Context, candidate models.AvatarCandidate) error
}

type trainingService interface {
	Groups(ctx context.Context) ([]string, error)
	ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error)
	Exercise(ctx context.Context, id int) (*models.Exercise, error)
	History(ctx context.Context) ([]models.HistoryDay, error)
}

// App wires the services together behind the REPL.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	sessions sessionService
	profile  profileService
	training trainingService
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dbPath := cfg.DatabasePath
	if !filepath.IsAbs(dbPath) {
		dir, err := filex.EnsureSubDir("data")
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, dbPath)
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout, log)
	store := session.NewSQLiteRepository(db)

	sessions := services.NewSessionManager(apiClient, store, log)
	profile := services.NewProfileService(apiClient, sessions, log)
	training := services.NewTrainingService(apiClient)

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		sessions: sessions,
		profile:  profile,
		training: training,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	state := a.sessions.Restore(ctx)
	if state == services.StateAuthenticated {
		if user, ok := a.sessions.Current(); ok {
			printlnFn("Welcome back, " + user.Name + "!")
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) getStatus() string {
	if user, ok := a.sessions.Current(); ok {
		return "(" + user.Email + ")"
	}
	return ""
}
