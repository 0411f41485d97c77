package resumeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/Abraxas-365/careerkit/career/resume"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type PostgresResumeRepository struct {
	db *sqlx.DB
}

func NewPostgresResumeRepository(db *sqlx.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

// resumeRow maps the resumes table; JSONB sections stay raw until scan time.
type resumeRow struct {
	ID        kernel.ResumeID `db:"id"`
	UserID    kernel.UserID   `db:"user_id"`
	Title     string          `db:"title"`
	IsDefault bool            `db:"is_default"`

	PersonalInfo []byte `db:"personal_info"`
	Experience   []byte `db:"experience"`
	Education    []byte `db:"education"`
	Skills       []byte `db:"skills"`
	Languages    []byte `db:"languages"`
	Summary      string `db:"summary"`

	PhotoURL sql.NullString `db:"photo_url"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row *resumeRow) toEntity() (*resume.Resume, error) {
	r := &resume.Resume{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		IsDefault: row.IsDefault,
		Summary:   row.Summary,
		PhotoURL:  row.PhotoURL.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	fields := []struct {
		raw  []byte
		dest any
	}{
		{row.PersonalInfo, &r.PersonalInfo},
		{row.Experience, &r.Experience},
		{row.Education, &r.Education},
		{row.Skills, &r.Skills},
		{row.Languages, &r.Languages},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dest); err != nil {
			return nil, errx.Wrap(err, "corrupt resume section", errx.TypeInternal)
		}
	}

	return r, nil
}

type sectionBlobs struct {
	personalInfo []byte
	experience   []byte
	education    []byte
	skills       []byte
	languages    []byte
}

func marshalSections(r *resume.Resume) (*sectionBlobs, error) {
	var blobs sectionBlobs
	var err error

	marshal := func(field string, v any, dest *[]byte) {
		if err != nil {
			return
		}
		var raw []byte
		raw, err = json.Marshal(v)
		if err != nil {
			err = resume.ErrInvalidResumeData().WithDetail("field", field)
			return
		}
		*dest = raw
	}

	marshal("personal_info", r.PersonalInfo, &blobs.personalInfo)
	marshal("experience", r.Experience, &blobs.experience)
	marshal("education", r.Education, &blobs.education)
	marshal("skills", r.Skills, &blobs.skills)
	marshal("languages", r.Languages, &blobs.languages)

	if err != nil {
		return nil, err
	}
	return &blobs, nil
}

// Create creates a new resume
func (repo *PostgresResumeRepository) Create(ctx context.Context, r *resume.Resume) error {
	blobs, err := marshalSections(r)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO resumes (
			id, user_id, title, is_default,
			personal_info, experience, education, skills, languages, summary,
			photo_url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10,
			$11, $12, $13
		)`

	_, err = repo.db.ExecContext(ctx, query,
		r.ID, r.UserID, r.Title, r.IsDefault,
		blobs.personalInfo, blobs.experience, blobs.education, blobs.skills, blobs.languages, r.Summary,
		nullIfEmpty(r.PhotoURL), r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return errx.Wrap(err, "failed to create resume", errx.TypeInternal)
	}

	return nil
}

// Update rewrites a resume's content fields
func (repo *PostgresResumeRepository) Update(ctx context.Context, r *resume.Resume) error {
	blobs, err := marshalSections(r)
	if err != nil {
		return err
	}

	query := `
		UPDATE resumes
		SET title = $2, personal_info = $3, experience = $4, education = $5,
		    skills = $6, languages = $7, summary = $8, photo_url = $9,
		    updated_at = $10
		WHERE id = $1`

	result, err := repo.db.ExecContext(ctx, query,
		r.ID, r.Title,
		blobs.personalInfo, blobs.experience, blobs.education, blobs.skills, blobs.languages,
		r.Summary, nullIfEmpty(r.PhotoURL), r.UpdatedAt,
	)
	if err != nil {
		return errx.Wrap(err, "failed to update resume", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to update resume", errx.TypeInternal)
	}
	if rows == 0 {
		return resume.ErrResumeNotFound()
	}

	return nil
}

// GetByID retrieves a resume by ID
func (repo *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	query := `
		SELECT id, user_id, title, is_default,
		       personal_info, experience, education, skills, languages, summary,
		       photo_url, created_at, updated_at
		FROM resumes WHERE id = $1`

	var row resumeRow
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound()
		}
		return nil, errx.Wrap(err, "failed to get resume", errx.TypeInternal)
	}

	return row.toEntity()
}

// ListByUser retrieves a user's resumes with pagination, default first
func (repo *PostgresResumeRepository) ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.Resume], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM resumes WHERE user_id = $1`
	if err := repo.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, errx.Wrap(err, "failed to count resumes", errx.TypeInternal)
	}

	query := `
		SELECT id, user_id, title, is_default,
		       personal_info, experience, education, skills, languages, summary,
		       photo_url, created_at, updated_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY is_default DESC, updated_at DESC
		LIMIT $2 OFFSET $3`

	var rows []resumeRow
	if err := repo.db.SelectContext(ctx, &rows, query, userID, pagination.Limit(), pagination.Offset()); err != nil {
		return nil, errx.Wrap(err, "failed to list resumes", errx.TypeInternal)
	}

	items := make([]resume.Resume, 0, len(rows))
	for i := range rows {
		r, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

// CountByUser counts a user's resumes
func (repo *PostgresResumeRepository) CountByUser(ctx context.Context, userID kernel.UserID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM resumes WHERE user_id = $1`
	if err := repo.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, errx.Wrap(err, "failed to count resumes", errx.TypeInternal)
	}
	return count, nil
}

// GetDefaultByUser retrieves the user's default resume
func (repo *PostgresResumeRepository) GetDefaultByUser(ctx context.Context, userID kernel.UserID) (*resume.Resume, error) {
	query := `
		SELECT id, user_id, title, is_default,
		       personal_info, experience, education, skills, languages, summary,
		       photo_url, created_at, updated_at
		FROM resumes WHERE user_id = $1 AND is_default = TRUE`

	var row resumeRow
	if err := repo.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound()
		}
		return nil, errx.Wrap(err, "failed to get default resume", errx.TypeInternal)
	}

	return row.toEntity()
}

// SetDefault marks one resume as the default and unsets the others
func (repo *PostgresResumeRepository) SetDefault(ctx context.Context, id kernel.ResumeID, userID kernel.UserID) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errx.Wrap(err, "failed to begin transaction", errx.TypeInternal)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE resumes SET is_default = FALSE WHERE user_id = $1 AND is_default = TRUE`, userID); err != nil {
		return errx.Wrap(err, "failed to unset default resume", errx.TypeInternal)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE resumes SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errx.Wrap(err, "failed to set default resume", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to set default resume", errx.TypeInternal)
	}
	if rows == 0 {
		return resume.ErrResumeNotFound()
	}

	if err := tx.Commit(); err != nil {
		return errx.Wrap(err, "failed to commit default change", errx.TypeInternal)
	}
	return nil
}

// Delete removes a resume
func (repo *PostgresResumeRepository) Delete(ctx context.Context, id kernel.ResumeID) error {
	result, err := repo.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return errx.Wrap(err, "failed to delete resume", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to delete resume", errx.TypeInternal)
	}
	if rows == 0 {
		return resume.ErrResumeNotFound()
	}
	return nil
}

// UpdateEmbedding replaces the stored content embedding
func (repo *PostgresResumeRepository) UpdateEmbedding(ctx context.Context, id kernel.ResumeID, embedding []float32) error {
	query := `UPDATE resumes SET content_embedding = $2 WHERE id = $1`
	_, err := repo.db.ExecContext(ctx, query, id, pgvector.NewVector(embedding))
	if err != nil {
		return errx.Wrap(err, "failed to store embedding", errx.TypeInternal)
	}
	return nil
}

// MostSimilar returns the user's resume closest to the query vector by cosine
// distance. Resumes without an embedding are skipped.
func (repo *PostgresResumeRepository) MostSimilar(ctx context.Context, userID kernel.UserID, query []float32) (*resume.Resume, error) {
	stmt := `
		SELECT id, user_id, title, is_default,
		       personal_info, experience, education, skills, languages, summary,
		       photo_url, created_at, updated_at
		FROM resumes
		WHERE user_id = $1 AND content_embedding IS NOT NULL
		ORDER BY content_embedding <=> $2
		LIMIT 1`

	var row resumeRow
	if err := repo.db.GetContext(ctx, &row, stmt, userID, pgvector.NewVector(query)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound()
		}
		return nil, errx.Wrap(err, "failed to run similarity search", errx.TypeInternal)
	}

	return row.toEntity()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
