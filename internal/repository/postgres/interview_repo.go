package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"go-learnlab-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewColumns = `id, user_id, title, mode, configuration, questions, responses, score, feedback, status, started_at, completed_at, tags, is_public, created_at, updated_at`

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var iv domain.Interview
	var configuration, questions, responses, feedback, tags string
	err := row.Scan(
		&iv.ID, &iv.UserID, &iv.Title, &iv.Mode,
		&configuration, &questions, &responses, &iv.Score, &feedback,
		&iv.Status, &iv.StartedAt, &iv.CompletedAt, &tags, &iv.IsPublic,
		&iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	_ = json.Unmarshal([]byte(configuration), &iv.Configuration)
	iv.Questions = decodeDocList(questions)
	iv.Responses = []domain.InterviewResponse{}
	_ = json.Unmarshal([]byte(responses), &iv.Responses)
	iv.Feedback = decodeDoc(feedback)
	iv.Tags = decodeStrings(tags)
	return &iv, nil
}

func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	query := `INSERT INTO interviews (user_id, title, mode, configuration, questions, responses, score, feedback, status, tags, is_public, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	return r.db.QueryRow(ctx, query,
		interview.UserID, interview.Title, interview.Mode,
		encodeJSON(interview.Configuration, "{}"),
		encodeJSON(interview.Questions, "[]"), encodeJSON(interview.Responses, "[]"),
		interview.Score, encodeJSON(interview.Feedback, "{}"),
		interview.Status, encodeJSON(interview.Tags, "[]"), interview.IsPublic,
		interview.CreatedAt, interview.UpdatedAt,
	).Scan(&interview.ID)
}

func (r *interviewRepo) GetByOwner(ctx context.Context, id, userID int64) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1 AND user_id = $2`
	return scanInterview(r.db.QueryRow(ctx, query, id, userID))
}

func (r *interviewRepo) Fetch(ctx context.Context, userID int64, filter domain.InterviewFilter, limit, offset int) ([]domain.Interview, int64, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
	          WHERE user_id = $1
	            AND ($2 = '' OR status = $2)
	            AND ($3 = '' OR mode = $3)
	          ORDER BY created_at DESC LIMIT $4 OFFSET $5`

	rows, err := r.db.Query(ctx, query, userID, filter.Status, filter.Mode, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, 0, err
		}
		interviews = append(interviews, *iv)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM interviews
	               WHERE user_id = $1
	                 AND ($2 = '' OR status = $2)
	                 AND ($3 = '' OR mode = $3)`
	if err := r.db.QueryRow(ctx, countQuery, userID, filter.Status, filter.Mode).Scan(&total); err != nil {
		return nil, 0, err
	}

	return interviews, total, nil
}

// FetchPublic lists shared interviews with their owner's display name.
func (r *interviewRepo) FetchPublic(ctx context.Context, mode string, limit, offset int) ([]domain.PublicInterview, int64, error) {
	query := `SELECT i.id, i.user_id, i.title, i.mode, i.configuration, i.questions, i.responses, i.score, i.feedback, i.status, i.started_at, i.completed_at, i.tags, i.is_public, i.created_at, i.updated_at,
	                 COALESCE(u.name, 'Unknown User') AS user_name
	          FROM interviews i
	          LEFT JOIN users u ON i.user_id = u.id
	          WHERE i.is_public = TRUE
	            AND ($1 = '' OR i.mode = $1)
	          ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, mode, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interviews []domain.PublicInterview
	for rows.Next() {
		var iv domain.PublicInterview
		var configuration, questions, responses, feedback, tags string
		if err := rows.Scan(
			&iv.ID, &iv.UserID, &iv.Title, &iv.Mode,
			&configuration, &questions, &responses, &iv.Score, &feedback,
			&iv.Status, &iv.StartedAt, &iv.CompletedAt, &tags, &iv.IsPublic,
			&iv.CreatedAt, &iv.UpdatedAt, &iv.UserName,
		); err != nil {
			return nil, 0, err
		}
		_ = json.Unmarshal([]byte(configuration), &iv.Configuration)
		iv.Questions = decodeDocList(questions)
		iv.Responses = []domain.InterviewResponse{}
		_ = json.Unmarshal([]byte(responses), &iv.Responses)
		iv.Feedback = decodeDoc(feedback)
		iv.Tags = decodeStrings(tags)
		interviews = append(interviews, iv)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM interviews WHERE is_public = TRUE AND ($1 = '' OR mode = $1)`
	if err := r.db.QueryRow(ctx, countQuery, mode).Scan(&total); err != nil {
		return nil, 0, err
	}

	return interviews, total, nil
}

func (r *interviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	query := `UPDATE interviews SET
		title = $3,
		configuration = $4,
		questions = $5,
		status = $6,
		started_at = $7,
		tags = $8,
		is_public = $9,
		updated_at = $10
	WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query,
		interview.ID, interview.UserID, interview.Title,
		encodeJSON(interview.Configuration, "{}"), encodeJSON(interview.Questions, "[]"),
		interview.Status, interview.StartedAt,
		encodeJSON(interview.Tags, "[]"), interview.IsPublic,
		interview.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendResponse appends to the serialized response list in one statement.
// The jsonb concatenation runs under the row lock, so two concurrent
// submitters both land instead of the classic read-modify-write lost update.
func (r *interviewRepo) AppendResponse(ctx context.Context, id, userID int64, resp domain.InterviewResponse) error {
	query := `UPDATE interviews
	          SET responses = (responses::jsonb || $3::jsonb)::text, updated_at = NOW()
	          WHERE id = $1 AND user_id = $2 AND status = $4`
	entry := "[" + encodeJSON(resp, "{}") + "]"
	result, err := r.db.Exec(ctx, query, id, userID, entry, domain.InterviewStatusInProgress)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Complete writes the terminal interview state and the owner's stats in one
// transaction. The two entities either both advance or neither does; a stats
// failure is reported distinctly after the rollback.
func (r *interviewRepo) Complete(ctx context.Context, interview *domain.Interview, stats domain.UserStats) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `UPDATE interviews SET
			status = $3,
			score = $4,
			feedback = $5,
			completed_at = $6,
			updated_at = $7
		WHERE id = $1 AND user_id = $2`,
		interview.ID, interview.UserID, interview.Status,
		interview.Score, encodeJSON(interview.Feedback, "{}"),
		interview.CompletedAt, interview.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET stats = $2, updated_at = NOW() WHERE id = $1`,
		interview.UserID, encodeJSON(stats, "{}")); err != nil {
		return errors.Join(domain.ErrStatsUpdate, err)
	}

	return tx.Commit(ctx)
}

func (r *interviewRepo) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM interviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
