package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/logger"
)

// Gateway implements domain.EnrichmentGateway over a chat-completions client.
//
// Each operation sends one system prompt plus one user message, then runs the
// reply through the typed parse step. What an unparseable reply means is
// decided here, per operation, and the result is always tagged with
// parseFallback so low-fidelity content is visible downstream.
type Gateway struct {
	client ChatClient
}

func NewGateway(client ChatClient) *Gateway {
	return &Gateway{client: client}
}

var _ domain.EnrichmentGateway = (*Gateway)(nil)

func (g *Gateway) StructureIdea(ctx context.Context, rawInput, ideaContext, tone string) (domain.Document, error) {
	if tone == "" {
		tone = domain.DefaultTone
	}

	content, err := g.client.ChatCompletion(ctx, ideaStructuringPrompt(ideaContext, tone), rawInput, 0.7, 2000)
	if err != nil {
		return nil, fmt.Errorf("structure idea: %w", err)
	}

	result := ParseObject(content)
	if !result.Parsed {
		logger.Log.Warn("Structured-content reply was not JSON, using keyword extraction", "context", ideaContext)
		return FallbackStructured(content), nil
	}
	return result.Doc, nil
}

func (g *Gateway) GenerateFeedback(ctx context.Context, structured domain.Document) (domain.Document, error) {
	content, err := g.client.ChatCompletion(ctx, ideaEvaluationPrompt(), mustJSON(structured), 0.3, 1500)
	if err != nil {
		return nil, fmt.Errorf("generate feedback: %w", err)
	}

	result := ParseObject(content)
	if !result.Parsed {
		// No invented scores: keep the raw text and flag it.
		return domain.Document{"aiFeedback": content, "parseFallback": true}, nil
	}
	return result.Doc, nil
}

func (g *Gateway) GenerateOutputs(ctx context.Context, structured domain.Document, ideaContext string) (domain.Document, error) {
	payload := mustJSON(structured)

	script, err := g.client.ChatCompletion(ctx, pitchScriptPrompt(ideaContext), payload, 0.8, 1500)
	if err != nil {
		return nil, fmt.Errorf("generate pitch script: %w", err)
	}

	slidesRaw, err := g.client.ChatCompletion(ctx, slideContentPrompt(), payload, 0.7, 2000)
	if err != nil {
		return nil, fmt.Errorf("generate slide content: %w", err)
	}

	outputs := domain.Document{"pitchScript": script}
	slides := ParseArray(slidesRaw)
	if slides.Parsed {
		outputs["slides"] = slides.List
	} else {
		outputs["slides"] = []domain.Document{}
		outputs["slidesRaw"] = slidesRaw
		outputs["parseFallback"] = true
	}
	return outputs, nil
}

func (g *Gateway) GenerateSummary(ctx context.Context, structured domain.Document) (string, error) {
	content, err := g.client.ChatCompletion(ctx, summaryPrompt(), mustJSON(structured), 0.7, 500)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return content, nil
}

func (g *Gateway) GenerateQuestions(ctx context.Context, config domain.InterviewConfig) ([]domain.Document, error) {
	system := questionGenerationPrompt(config.Role, config.Company, config.ExperienceLevel, config.QuestionTypes, config.Duration)

	company := config.Company
	if company == "" {
		company = "a company"
	}
	user := fmt.Sprintf("Generate interview questions for %s at %s", config.Role, company)

	content, err := g.client.ChatCompletion(ctx, system, user, 0.7, 2000)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	result := ParseArray(content)
	if !result.Parsed {
		questions := FallbackQuestions(content)
		if len(questions) == 0 {
			return nil, fmt.Errorf("generate questions: no questions in gateway reply")
		}
		logger.Log.Warn("Question reply was not JSON, extracted from prose", "count", len(questions))
		return questions, nil
	}
	return result.List, nil
}

func (g *Gateway) InterviewFeedback(ctx context.Context, questions []domain.Document, responses []domain.InterviewResponse, config domain.InterviewConfig) (domain.Document, error) {
	user := fmt.Sprintf("Questions: %s\n\nResponses: %s\n\nConfiguration: %s",
		mustJSON(questions), mustJSON(responses), mustJSON(config))

	content, err := g.client.ChatCompletion(ctx, interviewFeedbackPrompt(), user, 0.5, 2000)
	if err != nil {
		return nil, fmt.Errorf("interview feedback: %w", err)
	}

	result := ParseObject(content)
	if !result.Parsed {
		// Raw text with a zero score, rather than a fabricated one.
		return domain.Document{"overallScore": 0, "aiFeedback": content, "parseFallback": true}, nil
	}
	return result.Doc, nil
}

func mustJSON(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
