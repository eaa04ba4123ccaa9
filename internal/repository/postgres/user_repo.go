package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"go-learnlab-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, name, email, password_hash, role, profile, preferences, stats, is_active, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var profile, preferences, stats string
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&profile, &preferences, &stats,
		&user.IsActive, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user.Profile = decodeDoc(profile)
	user.Preferences = decodeDoc(preferences)
	_ = json.Unmarshal([]byte(stats), &user.Stats)
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, role, profile, preferences, stats, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
		encodeJSON(user.Profile, "{}"), encodeJSON(user.Preferences, "{}"), encodeJSON(user.Stats, "{}"),
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
		name = $2,
		email = $3,
		role = $4,
		profile = $5,
		preferences = $6,
		is_active = $7,
		updated_at = $8
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.Role,
		encodeJSON(user.Profile, "{}"), encodeJSON(user.Preferences, "{}"),
		user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateStats(ctx context.Context, id int64, stats domain.UserStats) error {
	result, err := r.db.Exec(ctx, `UPDATE users SET stats = $2, updated_at = NOW() WHERE id = $1`, id, encodeJSON(stats, "{}"))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	return err
}

func (r *userRepo) Fetch(ctx context.Context, filter domain.UserFilter, limit, offset int) ([]domain.User, int64, error) {
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE ($1 = '' OR role = $1)
	            AND ($2::boolean IS NULL OR is_active = $2)
	          ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, filter.Role, filter.IsActive, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users
	               WHERE ($1 = '' OR role = $1)
	                 AND ($2::boolean IS NULL OR is_active = $2)`
	if err := r.db.QueryRow(ctx, countQuery, filter.Role, filter.IsActive).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
