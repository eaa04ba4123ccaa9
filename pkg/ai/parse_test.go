package ai_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/ai"
	"go-learnlab-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestParseObject(t *testing.T) {
	t.Run("Should extract an object wrapped in prose", func(t *testing.T) {
		content := "Here is your structured idea:\n{\"problemStatement\": \"too many meetings\"}\nLet me know if you need more."
		result := ai.ParseObject(content)
		assert.True(t, result.Parsed)
		assert.Equal(t, "too many meetings", result.Doc["problemStatement"])
	})

	t.Run("Should report prose without JSON as unparsed", func(t *testing.T) {
		result := ai.ParseObject("I could not produce JSON this time, sorry.")
		assert.False(t, result.Parsed)
		assert.Nil(t, result.Doc)
		assert.NotEmpty(t, result.Raw)
	})

	t.Run("Should report malformed JSON as unparsed", func(t *testing.T) {
		result := ai.ParseObject("{\"problemStatement\": }")
		assert.False(t, result.Parsed)
	})
}

func TestParseArray(t *testing.T) {
	t.Run("Should extract a question list wrapped in prose", func(t *testing.T) {
		content := "Sure:\n[{\"questionText\": \"Why Go?\"}, {\"questionText\": \"Why not?\"}]"
		result := ai.ParseArray(content)
		assert.True(t, result.Parsed)
		assert.Len(t, result.List, 2)
		assert.Equal(t, "Why Go?", result.List[0]["questionText"])
	})

	t.Run("Should report a bare object as unparsed", func(t *testing.T) {
		result := ai.ParseArray("{\"questionText\": \"Why Go?\"}")
		assert.False(t, result.Parsed)
	})
}

func TestFallbackStructured(t *testing.T) {
	content := "The problem is that students study alone.\nMore detail here.\nOur solution pairs them automatically.\nTarget users are university students."
	doc := ai.FallbackStructured(content)

	assert.Equal(t, true, doc["parseFallback"])
	assert.Contains(t, doc["problemStatement"], "students study alone")
	assert.Contains(t, doc["solution"], "pairs them automatically")
	assert.Contains(t, doc["targetAudience"], "university students")
}

func TestFallbackQuestions(t *testing.T) {
	t.Run("Should pull numbered and question-mark lines", func(t *testing.T) {
		content := "Here are some questions:\n1. Tell me about yourself.\nWhat is your biggest weakness?\nGood luck!"
		questions := ai.FallbackQuestions(content)

		assert.Len(t, questions, 2)
		assert.Equal(t, "Tell me about yourself.", questions[0]["questionText"])
		assert.Equal(t, "What is your biggest weakness?", questions[1]["questionText"])
		assert.Equal(t, "general", questions[0]["questionType"])
	})

	t.Run("Should cap the extracted list at ten", func(t *testing.T) {
		content := ""
		for i := 0; i < 15; i++ {
			content += "What about this one?\n"
		}
		assert.Len(t, ai.FallbackQuestions(content), 10)
	})

	t.Run("Should return nothing for plain prose", func(t *testing.T) {
		assert.Empty(t, ai.FallbackQuestions("No questions here. Just statements."))
	})
}

// scriptedClient returns canned replies in order.
type scriptedClient struct {
	replies []string
	errs    []error
	calls   int
}

func (s *scriptedClient) ChatCompletion(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], err
	}
	return "", err
}

func TestGatewayStructureIdea(t *testing.T) {
	t.Run("Should fall back to keyword extraction on prose", func(t *testing.T) {
		client := &scriptedClient{replies: []string{"The problem is lost counts.\nThe solution is a counter."}}
		g := ai.NewGateway(client)

		doc, err := g.StructureIdea(context.Background(), "raw", "startup", "")
		assert.NoError(t, err)
		assert.Equal(t, true, doc["parseFallback"])
	})

	t.Run("Should propagate transport errors", func(t *testing.T) {
		client := &scriptedClient{errs: []error{errors.New("boom")}}
		g := ai.NewGateway(client)

		_, err := g.StructureIdea(context.Background(), "raw", "startup", "")
		assert.Error(t, err)
	})
}

func TestGatewayFeedbackFallback(t *testing.T) {
	client := &scriptedClient{replies: []string{"Strong idea overall, no JSON though."}}
	g := ai.NewGateway(client)

	doc, err := g.GenerateFeedback(context.Background(), domain.Document{"solution": "x"})
	assert.NoError(t, err)
	assert.Equal(t, true, doc["parseFallback"])
	assert.Equal(t, "Strong idea overall, no JSON though.", doc["aiFeedback"])
	// The fallback never invents a score.
	_, hasScore := doc["overallScore"]
	assert.False(t, hasScore)
}

func TestGatewayOutputs(t *testing.T) {
	t.Run("Should keep the raw slide text when slides fail to parse", func(t *testing.T) {
		client := &scriptedClient{replies: []string{"A 3 minute pitch script", "Slide one: intro. Slide two: demo."}}
		g := ai.NewGateway(client)

		outputs, err := g.GenerateOutputs(context.Background(), domain.Document{}, "hackathon")
		assert.NoError(t, err)
		assert.Equal(t, "A 3 minute pitch script", outputs["pitchScript"])
		assert.Equal(t, true, outputs["parseFallback"])
		assert.NotEmpty(t, outputs["slidesRaw"])
	})

	t.Run("Should parse a proper slide list", func(t *testing.T) {
		client := &scriptedClient{replies: []string{"script", "[{\"title\": \"Intro\"}]"}}
		g := ai.NewGateway(client)

		outputs, err := g.GenerateOutputs(context.Background(), domain.Document{}, "hackathon")
		assert.NoError(t, err)
		slides := outputs["slides"].([]domain.Document)
		assert.Len(t, slides, 1)
	})
}

func TestGatewayQuestionsFailWhenEmpty(t *testing.T) {
	client := &scriptedClient{replies: []string{"I cannot help with that."}}
	g := ai.NewGateway(client)

	_, err := g.GenerateQuestions(context.Background(), domain.InterviewConfig{Role: "Engineer", Duration: 30})
	assert.Error(t, err)
}

func TestGatewayInterviewFeedbackFallbackScoresZero(t *testing.T) {
	client := &scriptedClient{replies: []string{"Good answers overall."}}
	g := ai.NewGateway(client)

	doc, err := g.InterviewFeedback(context.Background(), nil, nil, domain.InterviewConfig{Role: "Engineer"})
	assert.NoError(t, err)
	assert.Equal(t, 0, doc["overallScore"])
	assert.Equal(t, true, doc["parseFallback"])
}
