package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/gamesurvey-backend/internal/model"
)

// ResultRepository is the append-only ledger of completed surveys.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Create inserts a result. DateTaken is assigned by the database (UTC).
func (r *ResultRepository) Create(ctx context.Context, res *model.Result) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO results (account_id, difficulty, score, max_score, time_taken)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, date_taken`,
		res.AccountID, res.Difficulty, res.Score, res.MaxScore, res.TimeTaken,
	).Scan(&res.ID, &res.DateTaken)
}

// ListByAccount retrieves one account's results, newest first.
func (r *ResultRepository) ListByAccount(ctx context.Context, accountID int) ([]model.Result, error) {
	return r.list(ctx,
		`SELECT r.id, r.account_id, a.username, r.difficulty, r.score, r.max_score, r.time_taken, r.date_taken
		 FROM results r JOIN accounts a ON a.id = r.account_id
		 WHERE r.account_id = $1
		 ORDER BY r.date_taken DESC, r.id DESC`, accountID)
}

// ListAll retrieves every result with the owning username, newest first.
func (r *ResultRepository) ListAll(ctx context.Context) ([]model.Result, error) {
	return r.list(ctx,
		`SELECT r.id, r.account_id, a.username, r.difficulty, r.score, r.max_score, r.time_taken, r.date_taken
		 FROM results r JOIN accounts a ON a.id = r.account_id
		 ORDER BY r.date_taken DESC, r.id DESC`)
}

func (r *ResultRepository) list(ctx context.Context, query string, args ...any) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.Result{}
	for rows.Next() {
		var res model.Result
		if err := rows.Scan(&res.ID, &res.AccountID, &res.Username, &res.Difficulty,
			&res.Score, &res.MaxScore, &res.TimeTaken, &res.DateTaken); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
