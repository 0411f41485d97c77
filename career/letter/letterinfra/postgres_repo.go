package letterinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/careerkit/career/letter"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type PostgresLetterRepository struct {
	db *sqlx.DB
}

func NewPostgresLetterRepository(db *sqlx.DB) *PostgresLetterRepository {
	return &PostgresLetterRepository{db: db}
}

// Create creates a new letter
func (repo *PostgresLetterRepository) Create(ctx context.Context, l *letter.Letter) error {
	query := `
		INSERT INTO letters (
			id, user_id, title, company, position, recipient, body, locale,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err := repo.db.ExecContext(ctx, query,
		l.ID, l.UserID, l.Title, l.Company, l.Position, l.Recipient, l.Body, l.Locale,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return errx.Wrap(err, "failed to create letter", errx.TypeInternal)
	}
	return nil
}

// Update rewrites a letter
func (repo *PostgresLetterRepository) Update(ctx context.Context, l *letter.Letter) error {
	query := `
		UPDATE letters
		SET title = $2, company = $3, position = $4, recipient = $5,
		    body = $6, locale = $7, updated_at = $8
		WHERE id = $1`

	result, err := repo.db.ExecContext(ctx, query,
		l.ID, l.Title, l.Company, l.Position, l.Recipient, l.Body, l.Locale, l.UpdatedAt,
	)
	if err != nil {
		return errx.Wrap(err, "failed to update letter", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to update letter", errx.TypeInternal)
	}
	if rows == 0 {
		return letter.ErrLetterNotFound()
	}
	return nil
}

// GetByID retrieves a letter by ID
func (repo *PostgresLetterRepository) GetByID(ctx context.Context, id kernel.LetterID) (*letter.Letter, error) {
	query := `SELECT * FROM letters WHERE id = $1`

	var l letter.Letter
	if err := repo.db.GetContext(ctx, &l, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, letter.ErrLetterNotFound()
		}
		return nil, errx.Wrap(err, "failed to get letter", errx.TypeInternal)
	}
	return &l, nil
}

// ListByUser retrieves a user's letters with pagination, newest first
func (repo *PostgresLetterRepository) ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[letter.Letter], error) {
	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM letters WHERE user_id = $1`, userID); err != nil {
		return nil, errx.Wrap(err, "failed to count letters", errx.TypeInternal)
	}

	query := `
		SELECT * FROM letters
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3`

	var items []letter.Letter
	if err := repo.db.SelectContext(ctx, &items, query, userID, pagination.Limit(), pagination.Offset()); err != nil {
		return nil, errx.Wrap(err, "failed to list letters", errx.TypeInternal)
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

// Delete removes a letter
func (repo *PostgresLetterRepository) Delete(ctx context.Context, id kernel.LetterID) error {
	result, err := repo.db.ExecContext(ctx, `DELETE FROM letters WHERE id = $1`, id)
	if err != nil {
		return errx.Wrap(err, "failed to delete letter", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to delete letter", errx.TypeInternal)
	}
	if rows == 0 {
		return letter.ErrLetterNotFound()
	}
	return nil
}
