package domain

import "context"

// EnrichmentGateway is the external text-generation service behind the idea
// refiner and the interview simulator. Each call may fail independently of
// the rest of the system; failure is the only error condition the lifecycle
// handlers react to.
type EnrichmentGateway interface {
	StructureIdea(ctx context.Context, rawInput, ideaContext, tone string) (Document, error)
	GenerateFeedback(ctx context.Context, structured Document) (Document, error)
	GenerateOutputs(ctx context.Context, structured Document, ideaContext string) (Document, error)
	GenerateSummary(ctx context.Context, structured Document) (string, error)
	GenerateQuestions(ctx context.Context, config InterviewConfig) ([]Document, error)
	InterviewFeedback(ctx context.Context, questions []Document, responses []InterviewResponse, config InterviewConfig) (Document, error)
}
