// Package app wires configuration, storage and services into one session.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/render"
	"github.com/alexanderramin/gantt/internal/repository"
	"github.com/alexanderramin/gantt/internal/service"
)

// DefaultOwner is used when neither configuration nor the OS names a user.
const DefaultOwner = "local"

// Session is one owner's view of the store.
type Session struct {
	Config config.Config
	DB     *sql.DB
	Owner  string
	Logger *slog.Logger

	Tasks    service.TaskService
	Projects service.ProjectService
	Import   service.ImportService
	Export   service.ExportService
}

// Open connects to cfg.DBPath and wires the services. Use-case events are
// logged to stderr when cfg.LogCalls is set.
func Open(cfg config.Config) (*Session, error) {
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewSession(database, cfg, ResolveOwner(cfg.Owner), os.Stderr), nil
}

// NewSession wires services over an already open database.
func NewSession(database *sql.DB, cfg config.Config, owner string, logOut io.Writer) *Session {
	logger := service.NewLogger(logOut)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogCalls {
		observer = service.NewLogUseCaseObserver(logger)
	}

	taskRepo := repository.NewSQLiteTaskRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	tasks := service.NewTaskService(taskRepo, uow, owner, observer)
	return &Session{
		Config:   cfg,
		DB:       database,
		Owner:    owner,
		Logger:   logger,
		Tasks:    tasks,
		Projects: service.NewProjectService(projectRepo, owner, observer),
		Import:   service.NewImportService(uow, owner, observer),
		Export:   service.NewExportService(tasks, observer),
	}
}

// Close releases the database.
func (s *Session) Close() error {
	return s.DB.Close()
}

// Chart loads the tree and project settings and lays out the visible rows
// with the configured geometry.
func (s *Session) Chart(ctx context.Context, now time.Time) (render.Chart, error) {
	roots, err := s.Tasks.Tree(ctx)
	if err != nil {
		return render.Chart{}, err
	}
	settings, err := s.Projects.Get(ctx)
	if err != nil {
		return render.Chart{}, err
	}
	return render.New(settings.DisplayName(), roots, settings, now, s.Config.DayWidth, s.Config.RowHeight), nil
}

// ResolveOwner picks the owner identity: the configured one, then the OS
// login name, then DefaultOwner.
func ResolveOwner(configured string) string {
	if o := strings.TrimSpace(configured); o != "" {
		return o
	}
	if u, err := user.Current(); err == nil && strings.TrimSpace(u.Username) != "" {
		return u.Username
	}
	return DefaultOwner
}
