package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")

	// ErrStatsUpdate marks a failure in the stats leg of a transactional
	// completion, as opposed to the interview write itself.
	ErrStatsUpdate = errors.New("user stats update failed")
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// UserStats holds the running aggregates shown on the dashboard.
// AverageScore is a running mean recomputed on each completed interview.
type UserStats struct {
	IdeasRefined        int     `json:"ideasRefined"`
	InterviewsCompleted int     `json:"interviewsCompleted"`
	TotalPracticeTime   int     `json:"totalPracticeTime"`
	AverageScore        float64 `json:"averageScore"`
}

// RecordInterviewScore folds a completed interview into the aggregates.
// The first completion sets the average directly instead of relying on the
// general formula degenerating at n=1.
func (s *UserStats) RecordInterviewScore(score float64) {
	s.InterviewsCompleted++
	n := float64(s.InterviewsCompleted)
	if s.InterviewsCompleted == 1 {
		s.AverageScore = score
		return
	}
	s.AverageScore = (s.AverageScore*(n-1) + score) / n
}

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Profile      Document   `json:"profile"`
	Preferences  Document   `json:"preferences"`
	Stats        UserStats  `json:"stats"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role     string
	IsActive *bool
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateStats(ctx context.Context, id int64, stats UserStats) error
	TouchLastLogin(ctx context.Context, id int64) error
	Fetch(ctx context.Context, filter UserFilter, limit, offset int) ([]User, int64, error)
	Delete(ctx context.Context, id int64) error
}

type AuthUsecase interface {
	Register(ctx context.Context, name, email, password, role string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
	RefreshToken(ctx context.Context, userID int64) (string, error)
	UpdateDetails(ctx context.Context, userID int64, name, email *string) (*User, error)
	UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

// StatsUpdate carries a partial stats merge; nil fields are left untouched.
type StatsUpdate struct {
	IdeasRefined        *int     `json:"ideasRefined"`
	InterviewsCompleted *int     `json:"interviewsCompleted"`
	TotalPracticeTime   *int     `json:"totalPracticeTime"`
	AverageScore        *float64 `json:"averageScore"`
}

// UserUpdate carries a partial admin-side user merge.
type UserUpdate struct {
	Name        *string
	Email       *string
	Role        *string
	IsActive    *bool
	Profile     Document
	Preferences Document
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*User, error)
	UpdateProfile(ctx context.Context, userID int64, profile, preferences Document) (*User, error)
	GetStats(ctx context.Context, userID int64) (UserStats, error)
	UpdateStats(ctx context.Context, userID int64, update StatsUpdate) (UserStats, error)
	ListUsers(ctx context.Context, filter UserFilter, page, limit int) ([]User, int64, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}
