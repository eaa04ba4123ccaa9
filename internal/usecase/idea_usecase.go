package usecase

import (
	"context"
	"net/http"
	"time"

	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"
	"go-learnlab-backend/pkg/logger"
)

type ideaUsecase struct {
	ideaRepo domain.IdeaRepository
	userRepo domain.UserRepository
	gateway  domain.EnrichmentGateway
}

func NewIdeaUsecase(ideaRepo domain.IdeaRepository, userRepo domain.UserRepository, gateway domain.EnrichmentGateway) domain.IdeaUsecase {
	return &ideaUsecase{ideaRepo: ideaRepo, userRepo: userRepo, gateway: gateway}
}

// CreateIdea inserts the record in processing, then runs the enrichment chain
// synchronously. The caller always gets a terminal record back: completed with
// the full structured/feedback/outputs set, or error with an error note and no
// partial content. An enrichment failure is not a request failure.
func (u *ideaUsecase) CreateIdea(ctx context.Context, userID int64, input domain.CreateIdeaInput) (*domain.Idea, error) {
	tone := input.Tone
	if tone == "" {
		tone = domain.DefaultTone
	}

	now := time.Now()
	idea := &domain.Idea{
		UserID:        userID,
		Title:         input.Title,
		OriginalInput: input.OriginalInput,
		Context:       input.Context,
		Customization: domain.Document{"tone": tone},
		Status:        domain.IdeaStatusProcessing,
		Tags:          []string{},
		Likes:         []int64{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.ideaRepo.Create(ctx, idea); err != nil {
		return nil, err
	}

	u.enrich(ctx, idea)

	if err := u.ideaRepo.Update(ctx, idea); err != nil {
		return nil, err
	}

	if idea.Status == domain.IdeaStatusCompleted {
		u.recordRefinement(ctx, userID)
	}

	return idea, nil
}

// enrich runs structure -> feedback -> outputs against the gateway and writes
// the result into the idea in memory. All three must succeed; a failure at any
// step discards the partial results and marks the idea as errored.
func (u *ideaUsecase) enrich(ctx context.Context, idea *domain.Idea) {
	start := time.Now()

	structured, err := u.gateway.StructureIdea(ctx, idea.OriginalInput, idea.Context, idea.Tone())
	if err == nil {
		var feedback domain.Document
		feedback, err = u.gateway.GenerateFeedback(ctx, structured)
		if err == nil {
			var outputs domain.Document
			outputs, err = u.gateway.GenerateOutputs(ctx, structured, idea.Context)
			if err == nil {
				elapsed := int(time.Since(start).Milliseconds())
				idea.StructuredContent = structured
				idea.Feedback = feedback
				idea.Outputs = outputs
				idea.Status = domain.IdeaStatusCompleted
				idea.AIProcessingTime = &elapsed
				idea.UpdatedAt = time.Now()
				return
			}
		}
	}

	logger.Log.Error("idea enrichment failed", "ideaId", idea.ID, "error", err)
	idea.StructuredContent = domain.Document{}
	idea.Feedback = domain.Document{"error": "AI processing failed. Please try again."}
	idea.Outputs = domain.Document{}
	idea.Status = domain.IdeaStatusError
	idea.AIProcessingTime = nil
	idea.UpdatedAt = time.Now()
}

// recordRefinement bumps the owner's ideasRefined counter. The idea itself is
// already saved; a stats failure is logged and swallowed.
func (u *ideaUsecase) recordRefinement(ctx context.Context, userID int64) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Warn("stats update skipped", "userId", userID, "error", err)
		return
	}
	stats := user.Stats
	stats.IdeasRefined++
	if err := u.userRepo.UpdateStats(ctx, userID, stats); err != nil {
		logger.Log.Warn("stats update failed", "userId", userID, "error", err)
	}
}

func (u *ideaUsecase) ListIdeas(ctx context.Context, userID int64, filter domain.IdeaFilter, page, limit int) ([]domain.Idea, int64, error) {
	page, limit = normalizePage(page, limit)
	return u.ideaRepo.Fetch(ctx, userID, filter, limit, (page-1)*limit)
}

func (u *ideaUsecase) GetIdea(ctx context.Context, id, userID int64) (*domain.Idea, error) {
	return u.ideaRepo.IncrementViews(ctx, id, userID)
}

func (u *ideaUsecase) UpdateIdea(ctx context.Context, id, userID int64, update domain.IdeaUpdate) (*domain.Idea, error) {
	idea, err := u.ideaRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		idea.Title = *update.Title
	}
	if update.OriginalInput != nil {
		idea.OriginalInput = *update.OriginalInput
	}
	if update.Context != nil {
		idea.Context = *update.Context
	}
	if update.Customization != nil {
		if idea.Customization == nil {
			idea.Customization = domain.Document{}
		}
		for k, v := range update.Customization {
			idea.Customization[k] = v
		}
	}
	if update.Tags != nil {
		idea.Tags = update.Tags
	}
	if update.IsPublic != nil {
		idea.IsPublic = *update.IsPublic
	}

	idea.UpdatedAt = time.Now()
	if err := u.ideaRepo.Update(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

func (u *ideaUsecase) DeleteIdea(ctx context.Context, id, userID int64) error {
	return u.ideaRepo.Delete(ctx, id, userID)
}

// ReprocessIdea reruns the enrichment chain, optionally with a new tone or
// context. Like CreateIdea it resolves to a terminal status and reports an
// enrichment failure through the record, not the error return.
func (u *ideaUsecase) ReprocessIdea(ctx context.Context, id, userID int64, tone, ideaContext string) (*domain.Idea, error) {
	idea, err := u.ideaRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if tone != "" {
		if idea.Customization == nil {
			idea.Customization = domain.Document{}
		}
		idea.Customization["tone"] = tone
	}
	if ideaContext != "" {
		idea.Context = ideaContext
	}

	idea.Status = domain.IdeaStatusProcessing
	idea.UpdatedAt = time.Now()
	if err := u.ideaRepo.Update(ctx, idea); err != nil {
		return nil, err
	}

	u.enrich(ctx, idea)

	if err := u.ideaRepo.Update(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

func (u *ideaUsecase) GenerateSummary(ctx context.Context, id, userID int64) (string, error) {
	idea, err := u.ideaRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return "", err
	}

	if idea.StructuredContent.IsEmpty() {
		return "", apperror.BadRequest("Idea must be processed before generating a summary")
	}

	summary, err := u.gateway.GenerateSummary(ctx, idea.StructuredContent)
	if err != nil {
		return "", apperror.New(http.StatusBadGateway, "Summary generation failed", err)
	}
	return summary, nil
}
