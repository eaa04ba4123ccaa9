package usecase

import (
	"context"
	"time"

	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"
)

type userUsecase struct {
	userRepo domain.UserRepository
}

func NewUserUsecase(userRepo domain.UserRepository) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// UpdateProfile merges the supplied documents key by key; omitted keys keep
// their stored values.
func (u *userUsecase) UpdateProfile(ctx context.Context, userID int64, profile, preferences domain.Document) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Profile == nil {
		user.Profile = domain.Document{}
	}
	for k, v := range profile {
		user.Profile[k] = v
	}

	if user.Preferences == nil {
		user.Preferences = domain.Document{}
	}
	for k, v := range preferences {
		user.Preferences[k] = v
	}

	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) GetStats(ctx context.Context, userID int64) (domain.UserStats, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	return user.Stats, nil
}

func (u *userUsecase) UpdateStats(ctx context.Context, userID int64, update domain.StatsUpdate) (domain.UserStats, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.UserStats{}, err
	}

	stats := user.Stats
	if update.IdeasRefined != nil {
		stats.IdeasRefined = *update.IdeasRefined
	}
	if update.InterviewsCompleted != nil {
		stats.InterviewsCompleted = *update.InterviewsCompleted
	}
	if update.TotalPracticeTime != nil {
		stats.TotalPracticeTime = *update.TotalPracticeTime
	}
	if update.AverageScore != nil {
		stats.AverageScore = *update.AverageScore
	}

	if err := u.userRepo.UpdateStats(ctx, userID, stats); err != nil {
		return domain.UserStats{}, err
	}
	return stats, nil
}

func (u *userUsecase) ListUsers(ctx context.Context, filter domain.UserFilter, page, limit int) ([]domain.User, int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	return u.userRepo.Fetch(ctx, filter, limit, (page-1)*limit)
}

func (u *userUsecase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, id)
}

func (u *userUsecase) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Role != nil {
		switch *update.Role {
		case domain.RoleStudent, domain.RoleInstructor, domain.RoleAdmin:
			user.Role = *update.Role
		default:
			return nil, apperror.BadRequest("Invalid role")
		}
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.Profile != nil {
		user.Profile = update.Profile
	}
	if update.Preferences != nil {
		user.Preferences = update.Preferences
	}

	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, id int64) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return u.userRepo.Delete(ctx, id)
}

// requireAdmin enforces the admin-only operations against the role the auth
// middleware loaded from the database, not the one baked into the token.
func requireAdmin(ctx context.Context) error {
	role, ok := ctx.Value(domain.KeyUserRole).(string)
	if !ok || role != domain.RoleAdmin {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
