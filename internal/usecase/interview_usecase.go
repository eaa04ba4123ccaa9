package usecase

import (
	"context"
	"errors"
	"time"

	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"
	"go-learnlab-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	userRepo      domain.UserRepository
	gateway       domain.EnrichmentGateway
	validate      *validator.Validate
}

func NewInterviewUsecase(interviewRepo domain.InterviewRepository, userRepo domain.UserRepository, gateway domain.EnrichmentGateway, validate *validator.Validate) domain.InterviewUsecase {
	return &interviewUsecase{interviewRepo: interviewRepo, userRepo: userRepo, gateway: gateway, validate: validate}
}

func (u *interviewUsecase) CreateInterview(ctx context.Context, userID int64, input domain.CreateInterviewInput) (*domain.Interview, error) {
	if err := u.validate.Struct(input.Configuration); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	now := time.Now()
	interview := &domain.Interview{
		UserID:        userID,
		Title:         input.Title,
		Mode:          input.Mode,
		Configuration: input.Configuration,
		Questions:     []domain.Document{},
		Responses:     []domain.InterviewResponse{},
		Feedback:      domain.Document{},
		Status:        domain.InterviewStatusDraft,
		Tags:          input.Tags,
		IsPublic:      input.IsPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if interview.Tags == nil {
		interview.Tags = []string{}
	}
	if err := u.interviewRepo.Create(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

func (u *interviewUsecase) ListInterviews(ctx context.Context, userID int64, filter domain.InterviewFilter, page, limit int) ([]domain.Interview, int64, error) {
	page, limit = normalizePage(page, limit)
	return u.interviewRepo.Fetch(ctx, userID, filter, limit, (page-1)*limit)
}

func (u *interviewUsecase) ListPublicInterviews(ctx context.Context, mode string, page, limit int) ([]domain.PublicInterview, int64, error) {
	page, limit = normalizePage(page, limit)
	return u.interviewRepo.FetchPublic(ctx, mode, limit, (page-1)*limit)
}

func (u *interviewUsecase) GetInterview(ctx context.Context, id, userID int64) (*domain.Interview, error) {
	return u.interviewRepo.GetByOwner(ctx, id, userID)
}

// UpdateInterview edits the session setup. Only drafts are editable; once a
// session starts, its configuration is frozen.
func (u *interviewUsecase) UpdateInterview(ctx context.Context, id, userID int64, update domain.InterviewUpdate) (*domain.Interview, error) {
	interview, err := u.interviewRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if interview.Status != domain.InterviewStatusDraft {
		return nil, apperror.BadRequest("Only draft interviews can be updated")
	}

	if update.Title != nil {
		interview.Title = *update.Title
	}
	if update.Configuration != nil {
		if err := u.validate.Struct(*update.Configuration); err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
		interview.Configuration = *update.Configuration
	}
	if update.Tags != nil {
		interview.Tags = update.Tags
	}
	if update.IsPublic != nil {
		interview.IsPublic = *update.IsPublic
	}

	interview.UpdatedAt = time.Now()
	if err := u.interviewRepo.Update(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

func (u *interviewUsecase) DeleteInterview(ctx context.Context, id, userID int64) error {
	return u.interviewRepo.Delete(ctx, id, userID)
}

// StartInterview moves a draft to in-progress, generating its question set
// from the configuration. Starting any other status is rejected, so a session
// cannot be restarted or have its questions regenerated.
func (u *interviewUsecase) StartInterview(ctx context.Context, id, userID int64) (*domain.Interview, error) {
	interview, err := u.interviewRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if interview.Status != domain.InterviewStatusDraft {
		return nil, apperror.BadRequest("Interview has already been started")
	}

	questions, err := u.gateway.GenerateQuestions(ctx, interview.Configuration)
	if err != nil {
		logger.Log.Error("question generation failed", "interviewId", id, "error", err)
		return nil, apperror.BadRequest("Failed to generate interview questions. Please try again.")
	}

	now := time.Now()
	interview.Questions = questions
	interview.Status = domain.InterviewStatusInProgress
	interview.StartedAt = &now
	interview.UpdatedAt = now

	if err := u.interviewRepo.Update(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

// SubmitResponse appends one answer to an in-progress session. The list is
// append-only; answering the same question twice records two entries.
func (u *interviewUsecase) SubmitResponse(ctx context.Context, id, userID int64, resp domain.InterviewResponse) (*domain.InterviewResponse, error) {
	interview, err := u.interviewRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if interview.Status != domain.InterviewStatusInProgress {
		return nil, apperror.BadRequest("Interview is not in progress")
	}

	resp.SubmittedAt = time.Now()
	if err := u.interviewRepo.AppendResponse(ctx, id, userID, resp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The session left in-progress between the read and the append.
			return nil, apperror.BadRequest("Interview is not in progress")
		}
		return nil, err
	}
	return &resp, nil
}

// CompleteInterview scores an in-progress session and folds the result into
// the owner's running stats. The interview row and the stats row commit in one
// transaction; if the stats write fails the completion rolls back too.
func (u *interviewUsecase) CompleteInterview(ctx context.Context, id, userID int64) (*domain.Interview, error) {
	interview, err := u.interviewRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if interview.Status != domain.InterviewStatusInProgress {
		return nil, apperror.BadRequest("Interview is not in progress")
	}

	feedback, err := u.gateway.InterviewFeedback(ctx, interview.Questions, interview.Responses, interview.Configuration)
	if err != nil {
		logger.Log.Error("interview feedback failed", "interviewId", id, "error", err)
		feedback = domain.Document{"error": "AI feedback generation failed."}
	}

	now := time.Now()
	interview.Feedback = feedback
	interview.Score = feedbackScore(feedback)
	interview.Status = domain.InterviewStatusCompleted
	interview.CompletedAt = &now
	interview.UpdatedAt = now

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := user.Stats
	stats.RecordInterviewScore(interview.Score)
	if interview.StartedAt != nil {
		stats.TotalPracticeTime += int(now.Sub(*interview.StartedAt).Minutes())
	}

	if err := u.interviewRepo.Complete(ctx, interview, stats); err != nil {
		if errors.Is(err, domain.ErrStatsUpdate) {
			logger.Log.Error("completion rolled back on stats write", "interviewId", id, "error", err)
		}
		return nil, err
	}
	return interview, nil
}

func (u *interviewUsecase) GetFeedback(ctx context.Context, id, userID int64) (*domain.Interview, error) {
	interview, err := u.interviewRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if interview.Status != domain.InterviewStatusCompleted {
		return nil, apperror.BadRequest("Feedback is only available for completed interviews")
	}
	return interview, nil
}

// feedbackScore pulls the numeric overallScore out of a feedback document.
// Missing or non-numeric values score zero.
func feedbackScore(feedback domain.Document) float64 {
	switch v := feedback["overallScore"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
