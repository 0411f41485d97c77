package interviewinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/careerkit/career/interview"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type PostgresInterviewRepository struct {
	db *sqlx.DB
}

func NewPostgresInterviewRepository(db *sqlx.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

type interviewRow struct {
	ID             kernel.InterviewID `db:"id"`
	UserID         kernel.UserID      `db:"user_id"`
	Position       string             `db:"position"`
	JobDescription string             `db:"job_description"`
	Locale         kernel.Locale      `db:"locale"`
	Status         interview.Status   `db:"status"`
	Questions      []byte             `db:"questions"`
	CreatedAt      time.Time          `db:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at"`
}

func (row *interviewRow) toEntity() (*interview.Interview, error) {
	i := &interview.Interview{
		ID:             row.ID,
		UserID:         row.UserID,
		Position:       row.Position,
		JobDescription: row.JobDescription,
		Locale:         row.Locale,
		Status:         row.Status,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if len(row.Questions) > 0 {
		if err := json.Unmarshal(row.Questions, &i.Questions); err != nil {
			return nil, errx.Wrap(err, "corrupt interview questions", errx.TypeInternal)
		}
	}
	return i, nil
}

// Create creates a new session
func (repo *PostgresInterviewRepository) Create(ctx context.Context, i *interview.Interview) error {
	questions, err := json.Marshal(i.Questions)
	if err != nil {
		return interview.ErrInvalidInterviewData().WithDetail("field", "questions")
	}

	query := `
		INSERT INTO interviews (
			id, user_id, position, job_description, locale, status, questions,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	_, err = repo.db.ExecContext(ctx, query,
		i.ID, i.UserID, i.Position, i.JobDescription, i.Locale, i.Status, questions,
		i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return errx.Wrap(err, "failed to create interview", errx.TypeInternal)
	}
	return nil
}

// Update rewrites a session
func (repo *PostgresInterviewRepository) Update(ctx context.Context, i *interview.Interview) error {
	questions, err := json.Marshal(i.Questions)
	if err != nil {
		return interview.ErrInvalidInterviewData().WithDetail("field", "questions")
	}

	query := `
		UPDATE interviews
		SET status = $2, questions = $3, updated_at = $4
		WHERE id = $1`

	result, err := repo.db.ExecContext(ctx, query, i.ID, i.Status, questions, i.UpdatedAt)
	if err != nil {
		return errx.Wrap(err, "failed to update interview", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to update interview", errx.TypeInternal)
	}
	if rows == 0 {
		return interview.ErrInterviewNotFound()
	}
	return nil
}

// GetByID retrieves a session by ID
func (repo *PostgresInterviewRepository) GetByID(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	query := `SELECT * FROM interviews WHERE id = $1`

	var row interviewRow
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interview.ErrInterviewNotFound()
		}
		return nil, errx.Wrap(err, "failed to get interview", errx.TypeInternal)
	}

	return row.toEntity()
}

// ListByUser retrieves a user's sessions with pagination, newest first
func (repo *PostgresInterviewRepository) ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM interviews WHERE user_id = $1`, userID); err != nil {
		return nil, errx.Wrap(err, "failed to count interviews", errx.TypeInternal)
	}

	query := `
		SELECT * FROM interviews
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var rows []interviewRow
	if err := repo.db.SelectContext(ctx, &rows, query, userID, pagination.Limit(), pagination.Offset()); err != nil {
		return nil, errx.Wrap(err, "failed to list interviews", errx.TypeInternal)
	}

	items := make([]interview.Interview, 0, len(rows))
	for idx := range rows {
		i, err := rows[idx].toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, *i)
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

// Delete removes a session
func (repo *PostgresInterviewRepository) Delete(ctx context.Context, id kernel.InterviewID) error {
	result, err := repo.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return errx.Wrap(err, "failed to delete interview", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to delete interview", errx.TypeInternal)
	}
	if rows == 0 {
		return interview.ErrInterviewNotFound()
	}
	return nil
}
