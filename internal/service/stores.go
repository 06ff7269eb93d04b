package service

import (
	"context"
	"time"

	"github.com/stemsi/gamesurvey-backend/internal/model"
)

// AccountStore is the identity store. Lookups return repository.ErrNotFound
// for missing rows and Create returns repository.ErrDuplicate for a taken username.
type AccountStore interface {
	GetByID(ctx context.Context, id int) (*model.Account, error)
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, a *model.Account) error
	List(ctx context.Context) ([]model.Account, error)
	SetAdmin(ctx context.Context, id int, isAdmin bool) error
}

// ResultStore is the append-only result ledger.
type ResultStore interface {
	Create(ctx context.Context, res *model.Result) error
	ListByAccount(ctx context.Context, accountID int) ([]model.Result, error)
	ListAll(ctx context.Context) ([]model.Result, error)
}

// SessionStore binds session ids to accounts.
type SessionStore interface {
	Create(ctx context.Context, sessionID string, accountID int, ttl time.Duration) error
	AccountID(ctx context.Context, sessionID string) (int, error)
	Delete(ctx context.Context, sessionID string) error
}

// ProgressStore holds in-flight survey progress per session.
type ProgressStore interface {
	Get(ctx context.Context, sessionID string) (*model.SurveyProgress, error)
	Save(ctx context.Context, sessionID string, p *model.SurveyProgress) error
	Delete(ctx context.Context, sessionID string) error
}

// ResultPublisher announces newly persisted results.
type ResultPublisher interface {
	Publish(ctx context.Context, res *model.Result) error
}
