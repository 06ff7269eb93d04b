package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/gamesurvey-backend/internal/model"
)

const accountColumns = `id, username, password_hash, is_admin, is_super_admin, created_at`

// AccountRepository handles account data access.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsAdmin, &a.IsSuperAdmin, &a.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// GetByUsername retrieves an account by exact, case-sensitive username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsAdmin, &a.IsSuperAdmin, &a.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// Count returns the number of registered accounts.
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Create inserts a new account. A taken username yields ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash, is_admin, is_super_admin)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		a.Username, a.PasswordHash, a.IsAdmin, a.IsSuperAdmin,
	).Scan(&a.ID, &a.CreatedAt)
	return translate(err)
}

// List retrieves all accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsAdmin, &a.IsSuperAdmin, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SetAdmin updates the is_admin flag of an account.
func (r *AccountRepository) SetAdmin(ctx context.Context, id int, isAdmin bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET is_admin = $1 WHERE id = $2`, isAdmin, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
