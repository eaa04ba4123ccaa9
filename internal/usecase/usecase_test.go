package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/internal/usecase"
	"go-learnlab-backend/pkg/auth"
	"go-learnlab-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}
func (m *MockUserRepo) UpdateStats(ctx context.Context, id int64, stats domain.UserStats) error {
	return m.Called(ctx, id, stats).Error(0)
}
func (m *MockUserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) Fetch(ctx context.Context, filter domain.UserFilter, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Get(1).(int64), args.Error(2)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockIdeaRepo struct {
	mock.Mock
}

func (m *MockIdeaRepo) Create(ctx context.Context, idea *domain.Idea) error {
	return m.Called(ctx, idea).Error(0)
}
func (m *MockIdeaRepo) GetByOwner(ctx context.Context, id, userID int64) (*domain.Idea, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Idea), args.Error(1)
}
func (m *MockIdeaRepo) Fetch(ctx context.Context, userID int64, filter domain.IdeaFilter, limit, offset int) ([]domain.Idea, int64, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	ideas, _ := args.Get(0).([]domain.Idea)
	return ideas, args.Get(1).(int64), args.Error(2)
}
func (m *MockIdeaRepo) Update(ctx context.Context, idea *domain.Idea) error {
	return m.Called(ctx, idea).Error(0)
}
func (m *MockIdeaRepo) IncrementViews(ctx context.Context, id, userID int64) (*domain.Idea, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Idea), args.Error(1)
}
func (m *MockIdeaRepo) Delete(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}
func (m *MockInterviewRepo) GetByOwner(ctx context.Context, id, userID int64) (*domain.Interview, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}
func (m *MockInterviewRepo) Fetch(ctx context.Context, userID int64, filter domain.InterviewFilter, limit, offset int) ([]domain.Interview, int64, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	interviews, _ := args.Get(0).([]domain.Interview)
	return interviews, args.Get(1).(int64), args.Error(2)
}
func (m *MockInterviewRepo) FetchPublic(ctx context.Context, mode string, limit, offset int) ([]domain.PublicInterview, int64, error) {
	args := m.Called(ctx, mode, limit, offset)
	interviews, _ := args.Get(0).([]domain.PublicInterview)
	return interviews, args.Get(1).(int64), args.Error(2)
}
func (m *MockInterviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}
func (m *MockInterviewRepo) AppendResponse(ctx context.Context, id, userID int64, resp domain.InterviewResponse) error {
	return m.Called(ctx, id, userID, resp).Error(0)
}
func (m *MockInterviewRepo) Complete(ctx context.Context, interview *domain.Interview, stats domain.UserStats) error {
	return m.Called(ctx, interview, stats).Error(0)
}
func (m *MockInterviewRepo) Delete(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) StructureIdea(ctx context.Context, rawInput, ideaContext, tone string) (domain.Document, error) {
	args := m.Called(ctx, rawInput, ideaContext, tone)
	doc, _ := args.Get(0).(domain.Document)
	return doc, args.Error(1)
}
func (m *MockGateway) GenerateFeedback(ctx context.Context, structured domain.Document) (domain.Document, error) {
	args := m.Called(ctx, structured)
	doc, _ := args.Get(0).(domain.Document)
	return doc, args.Error(1)
}
func (m *MockGateway) GenerateOutputs(ctx context.Context, structured domain.Document, ideaContext string) (domain.Document, error) {
	args := m.Called(ctx, structured, ideaContext)
	doc, _ := args.Get(0).(domain.Document)
	return doc, args.Error(1)
}
func (m *MockGateway) GenerateSummary(ctx context.Context, structured domain.Document) (string, error) {
	args := m.Called(ctx, structured)
	return args.String(0), args.Error(1)
}
func (m *MockGateway) GenerateQuestions(ctx context.Context, config domain.InterviewConfig) ([]domain.Document, error) {
	args := m.Called(ctx, config)
	questions, _ := args.Get(0).([]domain.Document)
	return questions, args.Error(1)
}
func (m *MockGateway) InterviewFeedback(ctx context.Context, questions []domain.Document, responses []domain.InterviewResponse, config domain.InterviewConfig) (domain.Document, error) {
	args := m.Called(ctx, questions, responses, config)
	doc, _ := args.Get(0).(domain.Document)
	return doc, args.Error(1)
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func hashOf(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func TestRegister(t *testing.T) {
	t.Run("Should reject a duplicate email with a conflict", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())

		mockRepo.On("GetByEmail", mock.Anything, "taken@example.com").
			Return(&domain.User{ID: 1, Email: "taken@example.com"}, nil)

		_, _, err := uc.Register(context.Background(), "Someone", "taken@example.com", "secret123", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Should never grant an elevated role on self-registration", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())

		mockRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*domain.User)
				u.ID = 42
			})

		user, token, err := uc.Register(context.Background(), "New User", "new@example.com", "secret123", "admin")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, user.Role)
		assert.NotEmpty(t, token)
		assert.NotEqual(t, "secret123", user.PasswordHash)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Should return the same message for unknown email and wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())

		mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)
		mockRepo.On("GetByEmail", mock.Anything, "known@example.com").
			Return(&domain.User{ID: 1, Email: "known@example.com", PasswordHash: hashOf("right"), IsActive: true}, nil)

		_, _, errUnknown := uc.Login(context.Background(), "nobody@example.com", "whatever")
		_, _, errWrong := uc.Login(context.Background(), "known@example.com", "wrong")

		assert.Error(t, errUnknown)
		assert.Error(t, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("Should reject a deactivated account even with valid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, testTokens())

		mockRepo.On("GetByEmail", mock.Anything, "locked@example.com").
			Return(&domain.User{ID: 2, Email: "locked@example.com", PasswordHash: hashOf("secret123"), IsActive: false}, nil)

		_, _, err := uc.Login(context.Background(), "locked@example.com", "secret123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deactivated")
	})
}

func TestCreateIdea(t *testing.T) {
	input := domain.CreateIdeaInput{
		Title:         "Study buddy matcher",
		OriginalInput: "An app that pairs students with compatible study partners based on schedule and goals",
		Context:       "hackathon",
	}

	t.Run("Should resolve to completed with the full enrichment set", func(t *testing.T) {
		ideaRepo := new(MockIdeaRepo)
		userRepo := new(MockUserRepo)
		gateway := new(MockGateway)
		uc := usecase.NewIdeaUsecase(ideaRepo, userRepo, gateway)

		structured := domain.Document{"problemStatement": "Students study alone"}
		feedback := domain.Document{"overallScore": 8}
		outputs := domain.Document{"pitchScript": "Hello judges"}

		ideaRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Idea")).Return(nil).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Idea).ID = 7 })
		gateway.On("StructureIdea", mock.Anything, input.OriginalInput, "hackathon", domain.DefaultTone).Return(structured, nil)
		gateway.On("GenerateFeedback", mock.Anything, structured).Return(feedback, nil)
		gateway.On("GenerateOutputs", mock.Anything, structured, "hackathon").Return(outputs, nil)
		ideaRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Idea")).Return(nil)
		userRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3}, nil)
		userRepo.On("UpdateStats", mock.Anything, int64(3), mock.AnythingOfType("domain.UserStats")).Return(nil).
			Run(func(args mock.Arguments) {
				stats := args.Get(2).(domain.UserStats)
				assert.Equal(t, 1, stats.IdeasRefined)
			})

		idea, err := uc.CreateIdea(context.Background(), 3, input)
		assert.NoError(t, err)
		assert.Equal(t, domain.IdeaStatusCompleted, idea.Status)
		assert.Equal(t, structured, idea.StructuredContent)
		assert.Equal(t, feedback, idea.Feedback)
		assert.Equal(t, outputs, idea.Outputs)
		assert.NotNil(t, idea.AIProcessingTime)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should resolve to error status without failing the request", func(t *testing.T) {
		ideaRepo := new(MockIdeaRepo)
		userRepo := new(MockUserRepo)
		gateway := new(MockGateway)
		uc := usecase.NewIdeaUsecase(ideaRepo, userRepo, gateway)

		ideaRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Idea")).Return(nil)
		gateway.On("StructureIdea", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("gateway timeout"))
		ideaRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Idea")).Return(nil)

		idea, err := uc.CreateIdea(context.Background(), 3, input)
		assert.NoError(t, err)
		assert.Equal(t, domain.IdeaStatusError, idea.Status)
		assert.Equal(t, "AI processing failed. Please try again.", idea.Feedback["error"])
		assert.True(t, idea.StructuredContent.IsEmpty())
		assert.Nil(t, idea.AIProcessingTime)
		// No stats bump on a failed run.
		userRepo.AssertNotCalled(t, "UpdateStats", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should discard partial content when a later step fails", func(t *testing.T) {
		ideaRepo := new(MockIdeaRepo)
		userRepo := new(MockUserRepo)
		gateway := new(MockGateway)
		uc := usecase.NewIdeaUsecase(ideaRepo, userRepo, gateway)

		structured := domain.Document{"problemStatement": "something"}

		ideaRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Idea")).Return(nil)
		gateway.On("StructureIdea", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(structured, nil)
		gateway.On("GenerateFeedback", mock.Anything, structured).Return(nil, errors.New("rate limited"))
		ideaRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Idea")).Return(nil)

		idea, err := uc.CreateIdea(context.Background(), 3, input)
		assert.NoError(t, err)
		assert.Equal(t, domain.IdeaStatusError, idea.Status)
		assert.True(t, idea.StructuredContent.IsEmpty())
	})
}

func TestGetIdea(t *testing.T) {
	t.Run("Should increment the view counter on every read", func(t *testing.T) {
		ideaRepo := new(MockIdeaRepo)
		uc := usecase.NewIdeaUsecase(ideaRepo, new(MockUserRepo), new(MockGateway))

		ideaRepo.On("IncrementViews", mock.Anything, int64(7), int64(3)).
			Return(&domain.Idea{ID: 7, UserID: 3, Views: 6}, nil)

		idea, err := uc.GetIdea(context.Background(), 7, 3)
		assert.NoError(t, err)
		assert.Equal(t, 6, idea.Views)
	})

	t.Run("Should not reveal records owned by someone else", func(t *testing.T) {
		ideaRepo := new(MockIdeaRepo)
		uc := usecase.NewIdeaUsecase(ideaRepo, new(MockUserRepo), new(MockGateway))

		ideaRepo.On("IncrementViews", mock.Anything, int64(7), int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.GetIdea(context.Background(), 7, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGenerateSummary(t *testing.T) {
	t.Run("Should require processed structured content", func(t *testing.T) {
		ideaRepo := new(MockIdeaRepo)
		uc := usecase.NewIdeaUsecase(ideaRepo, new(MockUserRepo), new(MockGateway))

		ideaRepo.On("GetByOwner", mock.Anything, int64(7), int64(3)).
			Return(&domain.Idea{ID: 7, UserID: 3, Status: domain.IdeaStatusError}, nil)

		_, err := uc.GenerateSummary(context.Background(), 7, 3)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be processed")
	})
}

func TestInterviewLifecycle(t *testing.T) {
	config := domain.InterviewConfig{Role: "Backend Engineer", Duration: 30}

	t.Run("Should reject an invalid configuration before persisting", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockUserRepo), new(MockGateway), validator.New())

		_, err := uc.CreateInterview(context.Background(), 3, domain.CreateInterviewInput{
			Title:         "Quick prep",
			Mode:          "ai-interviewer",
			Configuration: domain.InterviewConfig{Role: "Backend Engineer", Duration: 2},
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject starting a session twice", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockUserRepo), new(MockGateway), validator.New())

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).
			Return(&domain.Interview{ID: 5, UserID: 3, Status: domain.InterviewStatusInProgress}, nil)

		_, err := uc.StartInterview(context.Background(), 5, 3)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already been started")
	})

	t.Run("Should generate questions and stamp the start time", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		gateway := new(MockGateway)
		uc := usecase.NewInterviewUsecase(repo, new(MockUserRepo), gateway, validator.New())

		questions := []domain.Document{{"questionText": "Tell me about a project you shipped"}}

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).
			Return(&domain.Interview{ID: 5, UserID: 3, Status: domain.InterviewStatusDraft, Configuration: config}, nil)
		gateway.On("GenerateQuestions", mock.Anything, config).Return(questions, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Interview")).Return(nil)

		interview, err := uc.StartInterview(context.Background(), 5, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusInProgress, interview.Status)
		assert.Equal(t, questions, interview.Questions)
		assert.NotNil(t, interview.StartedAt)
	})

	t.Run("Should reject responses outside in-progress", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockUserRepo), new(MockGateway), validator.New())

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).
			Return(&domain.Interview{ID: 5, UserID: 3, Status: domain.InterviewStatusDraft}, nil)

		_, err := uc.SubmitResponse(context.Background(), 5, 3, domain.InterviewResponse{QuestionID: "q1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not in progress")
	})

	t.Run("Should freeze configuration after start", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockUserRepo), new(MockGateway), validator.New())

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).
			Return(&domain.Interview{ID: 5, UserID: 3, Status: domain.InterviewStatusCompleted}, nil)

		title := "Renamed"
		_, err := uc.UpdateInterview(context.Background(), 5, 3, domain.InterviewUpdate{Title: &title})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "draft")
	})
}

func TestCompleteInterview(t *testing.T) {
	started := time.Now().Add(-30 * time.Minute)

	inProgress := func() *domain.Interview {
		return &domain.Interview{
			ID:        5,
			UserID:    3,
			Status:    domain.InterviewStatusInProgress,
			StartedAt: &started,
			Questions: []domain.Document{{"questionText": "q"}},
			Responses: []domain.InterviewResponse{{QuestionID: "q1", AnswerText: "a"}},
		}
	}

	t.Run("Should set the average directly on the first completion", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		userRepo := new(MockUserRepo)
		gateway := new(MockGateway)
		uc := usecase.NewInterviewUsecase(repo, userRepo, gateway, validator.New())

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).Return(inProgress(), nil)
		gateway.On("InterviewFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Document{"overallScore": 80.0}, nil)
		userRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3}, nil)
		repo.On("Complete", mock.Anything, mock.AnythingOfType("*domain.Interview"), mock.AnythingOfType("domain.UserStats")).
			Return(nil).
			Run(func(args mock.Arguments) {
				stats := args.Get(2).(domain.UserStats)
				assert.Equal(t, 1, stats.InterviewsCompleted)
				assert.Equal(t, 80.0, stats.AverageScore)
				assert.Equal(t, 30, stats.TotalPracticeTime)
			})

		interview, err := uc.CompleteInterview(context.Background(), 5, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusCompleted, interview.Status)
		assert.Equal(t, 80.0, interview.Score)
		assert.NotNil(t, interview.CompletedAt)
	})

	t.Run("Should fold later scores into the running average", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		userRepo := new(MockUserRepo)
		gateway := new(MockGateway)
		uc := usecase.NewInterviewUsecase(repo, userRepo, gateway, validator.New())

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).Return(inProgress(), nil)
		gateway.On("InterviewFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Document{"overallScore": 60.0}, nil)
		userRepo.On("GetByID", mock.Anything, int64(3)).
			Return(&domain.User{ID: 3, Stats: domain.UserStats{InterviewsCompleted: 1, AverageScore: 80}}, nil)
		repo.On("Complete", mock.Anything, mock.AnythingOfType("*domain.Interview"), mock.AnythingOfType("domain.UserStats")).
			Return(nil).
			Run(func(args mock.Arguments) {
				stats := args.Get(2).(domain.UserStats)
				assert.Equal(t, 2, stats.InterviewsCompleted)
				assert.Equal(t, 70.0, stats.AverageScore)
			})

		_, err := uc.CompleteInterview(context.Background(), 5, 3)
		assert.NoError(t, err)
	})

	t.Run("Should score zero and still complete when feedback fails", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		userRepo := new(MockUserRepo)
		gateway := new(MockGateway)
		uc := usecase.NewInterviewUsecase(repo, userRepo, gateway, validator.New())

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).Return(inProgress(), nil)
		gateway.On("InterviewFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("gateway down"))
		userRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3}, nil)
		repo.On("Complete", mock.Anything, mock.AnythingOfType("*domain.Interview"), mock.AnythingOfType("domain.UserStats")).Return(nil)

		interview, err := uc.CompleteInterview(context.Background(), 5, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusCompleted, interview.Status)
		assert.Equal(t, 0.0, interview.Score)
		assert.NotEmpty(t, interview.Feedback["error"])
	})

	t.Run("Should surface a rolled-back completion as an error", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		userRepo := new(MockUserRepo)
		gateway := new(MockGateway)
		uc := usecase.NewInterviewUsecase(repo, userRepo, gateway, validator.New())

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).Return(inProgress(), nil)
		gateway.On("InterviewFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Document{"overallScore": 50.0}, nil)
		userRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3}, nil)
		repo.On("Complete", mock.Anything, mock.AnythingOfType("*domain.Interview"), mock.AnythingOfType("domain.UserStats")).
			Return(domain.ErrStatsUpdate)

		_, err := uc.CompleteInterview(context.Background(), 5, 3)
		assert.ErrorIs(t, err, domain.ErrStatsUpdate)
	})
}

func TestGetFeedback(t *testing.T) {
	t.Run("Should only serve feedback for completed sessions", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewUsecase(repo, new(MockUserRepo), new(MockGateway), validator.New())

		repo.On("GetByOwner", mock.Anything, int64(5), int64(3)).
			Return(&domain.Interview{ID: 5, UserID: 3, Status: domain.InterviewStatusInProgress}, nil)

		_, err := uc.GetFeedback(context.Background(), 5, 3)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "completed")
	})
}

func TestAdminGuard(t *testing.T) {
	uc := usecase.NewUserUsecase(new(MockUserRepo))

	t.Run("Should fail if role is not admin", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), domain.KeyUserRole, domain.RoleStudent)
		_, _, err := uc.ListUsers(ctx, domain.UserFilter{}, 1, 10)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Admin access required")
	})

	t.Run("Should fail safe if role is missing", func(t *testing.T) {
		_, _, err := uc.ListUsers(context.Background(), domain.UserFilter{}, 1, 10)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Admin access required")
	})
}
