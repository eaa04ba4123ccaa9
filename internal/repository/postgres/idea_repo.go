package postgres

import (
	"context"
	"errors"

	"go-learnlab-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ideaRepo struct {
	db *pgxpool.Pool
}

func NewIdeaRepository(db *pgxpool.Pool) domain.IdeaRepository {
	return &ideaRepo{db: db}
}

const ideaColumns = `id, user_id, title, original_input, context, structured_content, customization, attachments, feedback, outputs, status, is_public, tags, views, likes, ai_processing_time, created_at, updated_at`

func scanIdea(row pgx.Row) (*domain.Idea, error) {
	var idea domain.Idea
	var structured, customization, attachments, feedback, outputs, tags, likes string
	err := row.Scan(
		&idea.ID, &idea.UserID, &idea.Title, &idea.OriginalInput, &idea.Context,
		&structured, &customization, &attachments, &feedback, &outputs,
		&idea.Status, &idea.IsPublic, &tags, &idea.Views, &likes,
		&idea.AIProcessingTime, &idea.CreatedAt, &idea.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	idea.StructuredContent = decodeDoc(structured)
	idea.Customization = decodeDoc(customization)
	idea.Attachments = decodeDocList(attachments)
	idea.Feedback = decodeDoc(feedback)
	idea.Outputs = decodeDoc(outputs)
	idea.Tags = decodeStrings(tags)
	idea.Likes = decodeInt64s(likes)
	return &idea, nil
}

func (r *ideaRepo) Create(ctx context.Context, idea *domain.Idea) error {
	query := `INSERT INTO ideas (user_id, title, original_input, context, structured_content, customization, attachments, feedback, outputs, status, is_public, tags, views, likes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	return r.db.QueryRow(ctx, query,
		idea.UserID, idea.Title, idea.OriginalInput, idea.Context,
		encodeJSON(idea.StructuredContent, "{}"), encodeJSON(idea.Customization, "{}"),
		encodeJSON(idea.Attachments, "[]"), encodeJSON(idea.Feedback, "{}"), encodeJSON(idea.Outputs, "{}"),
		idea.Status, idea.IsPublic, encodeJSON(idea.Tags, "[]"), idea.Views, encodeJSON(idea.Likes, "[]"),
		idea.CreatedAt, idea.UpdatedAt,
	).Scan(&idea.ID)
}

// GetByOwner scopes the lookup to (id, owner) so a foreign record is
// indistinguishable from an absent one.
func (r *ideaRepo) GetByOwner(ctx context.Context, id, userID int64) (*domain.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE id = $1 AND user_id = $2`
	return scanIdea(r.db.QueryRow(ctx, query, id, userID))
}

func (r *ideaRepo) Fetch(ctx context.Context, userID int64, filter domain.IdeaFilter, limit, offset int) ([]domain.Idea, int64, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas
	          WHERE user_id = $1
	            AND ($2 = '' OR status = $2)
	            AND ($3 = '' OR context = $3)
	          ORDER BY created_at DESC LIMIT $4 OFFSET $5`

	rows, err := r.db.Query(ctx, query, userID, filter.Status, filter.Context, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ideas []domain.Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, 0, err
		}
		ideas = append(ideas, *idea)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM ideas
	               WHERE user_id = $1
	                 AND ($2 = '' OR status = $2)
	                 AND ($3 = '' OR context = $3)`
	if err := r.db.QueryRow(ctx, countQuery, userID, filter.Status, filter.Context).Scan(&total); err != nil {
		return nil, 0, err
	}

	return ideas, total, nil
}

func (r *ideaRepo) Update(ctx context.Context, idea *domain.Idea) error {
	query := `UPDATE ideas SET
		title = $3,
		original_input = $4,
		context = $5,
		structured_content = $6,
		customization = $7,
		feedback = $8,
		outputs = $9,
		status = $10,
		is_public = $11,
		tags = $12,
		updated_at = $13
	WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query,
		idea.ID, idea.UserID, idea.Title, idea.OriginalInput, idea.Context,
		encodeJSON(idea.StructuredContent, "{}"), encodeJSON(idea.Customization, "{}"),
		encodeJSON(idea.Feedback, "{}"), encodeJSON(idea.Outputs, "{}"),
		idea.Status, idea.IsPublic, encodeJSON(idea.Tags, "[]"),
		idea.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViews bumps the counter in a single statement; concurrent readers
// serialize on the row instead of overwriting each other's counts.
func (r *ideaRepo) IncrementViews(ctx context.Context, id, userID int64) (*domain.Idea, error) {
	query := `UPDATE ideas SET views = views + 1 WHERE id = $1 AND user_id = $2 RETURNING ` + ideaColumns
	return scanIdea(r.db.QueryRow(ctx, query, id, userID))
}

func (r *ideaRepo) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM ideas WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
