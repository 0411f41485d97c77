package analysisinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/careerkit/career/analysis"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type PostgresAnalysisRepository struct {
	db *sqlx.DB
}

func NewPostgresAnalysisRepository(db *sqlx.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

type analysisRow struct {
	ID             kernel.AnalysisID `db:"id"`
	UserID         kernel.UserID     `db:"user_id"`
	ResumeID       sql.NullString    `db:"resume_id"`
	JobDescription string            `db:"job_description"`
	Locale         kernel.Locale     `db:"locale"`
	MatchScore     int               `db:"match_score"`
	Strengths      pq.StringArray    `db:"strengths"`
	Gaps           pq.StringArray    `db:"gaps"`
	MissingSkills  pq.StringArray    `db:"missing_skills"`
	Summary        string            `db:"summary"`
	CreatedAt      time.Time         `db:"created_at"`
}

func (row *analysisRow) toEntity() *analysis.Analysis {
	return &analysis.Analysis{
		ID:             row.ID,
		UserID:         row.UserID,
		ResumeID:       kernel.ResumeID(row.ResumeID.String),
		JobDescription: row.JobDescription,
		Locale:         row.Locale,
		MatchScore:     row.MatchScore,
		Strengths:      row.Strengths,
		Gaps:           row.Gaps,
		MissingSkills:  row.MissingSkills,
		Summary:        row.Summary,
		CreatedAt:      row.CreatedAt,
	}
}

// Create persists an analysis result
func (repo *PostgresAnalysisRepository) Create(ctx context.Context, a *analysis.Analysis) error {
	query := `
		INSERT INTO analyses (
			id, user_id, resume_id, job_description, locale,
			match_score, strengths, gaps, missing_skills, summary, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	var resumeID sql.NullString
	if !a.ResumeID.IsEmpty() {
		resumeID = sql.NullString{String: a.ResumeID.String(), Valid: true}
	}

	_, err := repo.db.ExecContext(ctx, query,
		a.ID, a.UserID, resumeID, a.JobDescription, a.Locale,
		a.MatchScore, pq.StringArray(a.Strengths), pq.StringArray(a.Gaps),
		pq.StringArray(a.MissingSkills), a.Summary, a.CreatedAt,
	)
	if err != nil {
		return errx.Wrap(err, "failed to store analysis", errx.TypeInternal)
	}
	return nil
}

// GetByID retrieves an analysis by ID
func (repo *PostgresAnalysisRepository) GetByID(ctx context.Context, id kernel.AnalysisID) (*analysis.Analysis, error) {
	query := `SELECT * FROM analyses WHERE id = $1`

	var row analysisRow
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, analysis.ErrAnalysisNotFound()
		}
		return nil, errx.Wrap(err, "failed to get analysis", errx.TypeInternal)
	}

	return row.toEntity(), nil
}

// ListByUser retrieves a user's analysis history with pagination
func (repo *PostgresAnalysisRepository) ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[analysis.Analysis], error) {
	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM analyses WHERE user_id = $1`, userID); err != nil {
		return nil, errx.Wrap(err, "failed to count analyses", errx.TypeInternal)
	}

	query := `
		SELECT * FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var rows []analysisRow
	if err := repo.db.SelectContext(ctx, &rows, query, userID, pagination.Limit(), pagination.Offset()); err != nil {
		return nil, errx.Wrap(err, "failed to list analyses", errx.TypeInternal)
	}

	items := make([]analysis.Analysis, 0, len(rows))
	for i := range rows {
		items = append(items, *rows[i].toEntity())
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

// Delete removes an analysis
func (repo *PostgresAnalysisRepository) Delete(ctx context.Context, id kernel.AnalysisID) error {
	result, err := repo.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return errx.Wrap(err, "failed to delete analysis", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to delete analysis", errx.TypeInternal)
	}
	if rows == 0 {
		return analysis.ErrAnalysisNotFound()
	}
	return nil
}
