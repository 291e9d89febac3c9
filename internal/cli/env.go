// Package cli implements the seniorctl administration commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/senior-job-match/internal/config"
	"github.com/justsurfingit/senior-job-match/internal/database"
	"github.com/justsurfingit/senior-job-match/internal/logging"
	"github.com/justsurfingit/senior-job-match/internal/repository"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

// cliAdminID identifies operator actions taken through seniorctl.
var cliAdminID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("seniorctl"))

// Env carries what commands share. Store and DB are opened on first use
// unless a caller has set them already.
type Env struct {
	Out    io.Writer
	Log    *slog.Logger
	Config *config.Config
	Store  *repository.Store
	DB     *gorm.DB
}

func NewEnv() *Env {
	cfg := config.Load()
	return &Env{
		Out:    os.Stdout,
		Log:    logging.NewWithWriter(os.Stderr, cfg.LogLevel),
		Config: cfg,
	}
}

func (e *Env) database() (*gorm.DB, error) {
	if e.DB != nil {
		return e.DB, nil
	}
	if err := e.Config.Validate(); err != nil {
		return nil, err
	}
	db, err := database.Connect(database.Options{
		DSN:          e.Config.DatabaseURL,
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		ConnMaxLife:  e.Config.DBConnMaxLife,
	}, e.Log)
	if err != nil {
		return nil, err
	}
	e.DB = db
	return db, nil
}

func (e *Env) store() (*repository.Store, error) {
	if e.Store != nil {
		return e.Store, nil
	}
	db, err := e.database()
	if err != nil {
		return nil, err
	}
	e.Store = repository.NewGormStore(db)
	return e.Store, nil
}

// Close releases the database connection if one was opened.
func (e *Env) Close() {
	if e.DB != nil {
		database.Close(e.DB, e.Log)
	}
}

func (e *Env) admin() session.Actor {
	return session.Admin(cliAdminID)
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

func newContext() context.Context {
	return context.Background()
}
