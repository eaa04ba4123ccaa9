package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"
	"go-learnlab-backend/pkg/auth"

	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// Self-registration never grants elevated roles.
	if role != domain.RoleStudent && role != domain.RoleInstructor {
		role = domain.RoleStudent
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperror.Conflict("An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Profile:      domain.Document{},
		Preferences:  domain.Document{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same message as a wrong password so the response does not
			// reveal which emails are registered.
			return nil, "", apperror.Unauthorized("Invalid credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.Unauthorized("Invalid credentials")
	}

	if !user.IsActive {
		return nil, "", apperror.Unauthorized("Account is deactivated")
	}

	if err := u.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, "", err
	}
	now := time.Now()
	user.LastLogin = &now

	token, err := u.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *authUsecase) RefreshToken(ctx context.Context, userID int64) (string, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", apperror.Unauthorized("Account is deactivated")
	}
	return u.tokens.Issue(user.ID, user.Email, user.Role)
}

func (u *authUsecase) UpdateDetails(ctx context.Context, userID int64, name, email *string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != "" {
		user.Name = *name
	}
	if email != nil && *email != "" {
		next := strings.ToLower(strings.TrimSpace(*email))
		if next != user.Email {
			existing, err := u.userRepo.GetByEmail(ctx, next)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.Conflict("An account with this email already exists")
			}
			user.Email = next
		}
	}

	user.UpdatedAt = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperror.Unauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, userID, string(hash))
}
