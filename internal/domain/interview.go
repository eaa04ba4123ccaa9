package domain

import (
	"context"
	"time"
)

// Interview statuses form a strict linear machine:
// draft --start--> in-progress --complete--> completed.
// No transition skips a state and wrong-state calls are rejected.
const (
	InterviewStatusDraft      = "draft"
	InterviewStatusInProgress = "in-progress"
	InterviewStatusCompleted  = "completed"
)

// InterviewConfig drives question generation.
type InterviewConfig struct {
	Role            string   `json:"role" validate:"required,min=2,max=100"`
	Company         string   `json:"company,omitempty" validate:"omitempty,max=100"`
	ExperienceLevel string   `json:"experienceLevel,omitempty" validate:"omitempty,oneof=entry mid senior executive"`
	Duration        int      `json:"duration,omitempty" validate:"omitempty,min=5,max=120"`
	QuestionTypes   []string `json:"questionTypes,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// InterviewResponse is one submitted answer. The response list is append-only
// and not deduplicated by question: resubmitting creates a second entry.
type InterviewResponse struct {
	QuestionID   string    `json:"questionId"`
	AnswerText   string    `json:"answerText,omitempty"`
	ResponseTime int       `json:"responseTime,omitempty"`
	AudioURL     string    `json:"audioUrl,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type Interview struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"userId"`
	Title         string              `json:"title"`
	Mode          string              `json:"mode"`
	Configuration InterviewConfig     `json:"configuration"`
	Questions     []Document          `json:"questions"`
	Responses     []InterviewResponse `json:"responses"`
	Score         float64             `json:"score"`
	Feedback      Document            `json:"feedback"`
	Status        string              `json:"status"`
	StartedAt     *time.Time          `json:"startedAt,omitempty"`
	CompletedAt   *time.Time          `json:"completedAt,omitempty"`
	Tags          []string            `json:"tags"`
	IsPublic      bool                `json:"isPublic"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// PublicInterview is the reduced shape exposed on the public listing.
type PublicInterview struct {
	Interview
	UserName string `json:"userName"`
}

type InterviewFilter struct {
	Status string
	Mode   string
}

type InterviewUpdate struct {
	Title         *string
	Configuration *InterviewConfig
	Tags          []string
	IsPublic      *bool
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByOwner(ctx context.Context, id, userID int64) (*Interview, error)
	Fetch(ctx context.Context, userID int64, filter InterviewFilter, limit, offset int) ([]Interview, int64, error)
	FetchPublic(ctx context.Context, mode string, limit, offset int) ([]PublicInterview, int64, error)
	Update(ctx context.Context, interview *Interview) error
	// AppendResponse appends in a single SQL statement so concurrent
	// submitters serialize on the row instead of losing entries to a
	// read-modify-write race.
	AppendResponse(ctx context.Context, id, userID int64, resp InterviewResponse) error
	// Complete persists the terminal interview state and the owner's updated
	// stats in one transaction; a stats failure rolls the completion back.
	Complete(ctx context.Context, interview *Interview, stats UserStats) error
	Delete(ctx context.Context, id, userID int64) error
}

type CreateInterviewInput struct {
	Title         string
	Mode          string
	Configuration InterviewConfig
	Tags          []string
	IsPublic      bool
}

type InterviewUsecase interface {
	CreateInterview(ctx context.Context, userID int64, input CreateInterviewInput) (*Interview, error)
	ListInterviews(ctx context.Context, userID int64, filter InterviewFilter, page, limit int) ([]Interview, int64, error)
	ListPublicInterviews(ctx context.Context, mode string, page, limit int) ([]PublicInterview, int64, error)
	GetInterview(ctx context.Context, id, userID int64) (*Interview, error)
	UpdateInterview(ctx context.Context, id, userID int64, update InterviewUpdate) (*Interview, error)
	DeleteInterview(ctx context.Context, id, userID int64) error
	StartInterview(ctx context.Context, id, userID int64) (*Interview, error)
	SubmitResponse(ctx context.Context, id, userID int64, resp InterviewResponse) (*InterviewResponse, error)
	CompleteInterview(ctx context.Context, id, userID int64) (*Interview, error)
	GetFeedback(ctx context.Context, id, userID int64) (*Interview, error)
}
