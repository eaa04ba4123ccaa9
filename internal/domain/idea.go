package domain

import (
	"context"
	"time"
)

// Idea lifecycle statuses. Created in processing; resolves to exactly one
// terminal status per create/reprocess. Draft only exists for legacy rows.
const (
	IdeaStatusDraft      = "draft"
	IdeaStatusProcessing = "processing"
	IdeaStatusCompleted  = "completed"
	IdeaStatusError      = "error"
)

const DefaultTone = "persuasive"

type Idea struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"userId"`
	Title             string     `json:"title"`
	OriginalInput     string     `json:"originalInput"`
	Context           string     `json:"context"`
	StructuredContent Document   `json:"structuredContent"`
	Customization     Document   `json:"customization"`
	Attachments       []Document `json:"attachments"`
	Feedback          Document   `json:"feedback"`
	Outputs           Document   `json:"outputs"`
	Status            string     `json:"status"`
	IsPublic          bool       `json:"isPublic"`
	Tags              []string   `json:"tags"`
	Views             int        `json:"views"`
	Likes             []int64    `json:"likes"`
	AIProcessingTime  *int       `json:"aiProcessingTime"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Tone returns the customization tone, falling back to the platform default.
func (i *Idea) Tone() string {
	if tone, ok := i.Customization["tone"].(string); ok && tone != "" {
		return tone
	}
	return DefaultTone
}

// IdeaFilter narrows owner-scoped listings.
type IdeaFilter struct {
	Status  string
	Context string
}

// IdeaUpdate carries a shallow partial merge; nil fields are left untouched.
// Updates never re-trigger enrichment.
type IdeaUpdate struct {
	Title         *string
	OriginalInput *string
	Context       *string
	Customization Document
	Tags          []string
	IsPublic      *bool
}

type IdeaRepository interface {
	Create(ctx context.Context, idea *Idea) error
	// GetByOwner returns ErrNotFound both for absent rows and rows owned by
	// someone else, so existence never leaks across owners.
	GetByOwner(ctx context.Context, id, userID int64) (*Idea, error)
	Fetch(ctx context.Context, userID int64, filter IdeaFilter, limit, offset int) ([]Idea, int64, error)
	Update(ctx context.Context, idea *Idea) error
	// IncrementViews bumps the counter atomically in SQL and returns the row
	// with the incremented value, so concurrent reads never lose a count.
	IncrementViews(ctx context.Context, id, userID int64) (*Idea, error)
	Delete(ctx context.Context, id, userID int64) error
}

type CreateIdeaInput struct {
	Title         string
	OriginalInput string
	Context       string
	Tone          string
}

type IdeaUsecase interface {
	// CreateIdea inserts the record in processing and synchronously runs the
	// enrichment chain; the returned record is completed or error, never
	// processing (absent a crash mid-chain).
	CreateIdea(ctx context.Context, userID int64, input CreateIdeaInput) (*Idea, error)
	ListIdeas(ctx context.Context, userID int64, filter IdeaFilter, page, limit int) ([]Idea, int64, error)
	// GetIdea increments the view counter as a side effect of every read.
	GetIdea(ctx context.Context, id, userID int64) (*Idea, error)
	UpdateIdea(ctx context.Context, id, userID int64, update IdeaUpdate) (*Idea, error)
	DeleteIdea(ctx context.Context, id, userID int64) error
	ReprocessIdea(ctx context.Context, id, userID int64, tone, ideaContext string) (*Idea, error)
	// GenerateSummary requires non-empty structured content; the summary is
	// returned transiently and never persisted.
	GenerateSummary(ctx context.Context, id, userID int64) (string, error)
}
