package ai

import (
	"fmt"
	"strings"
)

var contextFramings = map[string]string{
	"hackathon":    "You are structuring an idea for a hackathon pitch. Focus on innovation, technical feasibility, and impact.",
	"startup":      "You are structuring an idea for a startup investor pitch. Focus on market opportunity, scalability, and business model.",
	"presentation": "You are structuring an idea for a class presentation. Focus on clarity, educational value, and engagement.",
	"innovation":   "You are structuring an idea for an innovation challenge. Focus on creativity, uniqueness, and potential impact.",
}

var pitchTimeLimits = map[string]string{
	"hackathon":    "2-3 minutes",
	"startup":      "5-10 minutes",
	"presentation": "5-7 minutes",
	"innovation":   "3-5 minutes",
}

func ideaStructuringPrompt(ideaContext, tone string) string {
	framing, ok := contextFramings[ideaContext]
	if !ok {
		framing = contextFramings["startup"]
	}

	return framing + `

Transform the raw idea into a structured format with these components:
1. Problem Statement - What specific problem does this solve?
2. Solution - What is the proposed solution/product?
3. Target Audience - Who are the primary users/beneficiaries?
4. Value Proposition - What makes this unique and valuable?
5. Market Fit - Why is this relevant now? What market need does it address?
6. Execution Plan - How would this be implemented? (optional)
7. Call to Action - How to engage judges/investors/audience?

Tone: ` + tone + `
Format: Return as JSON with the above keys and clear, concise content for each section.`
}

func ideaEvaluationPrompt() string {
	return `Evaluate the structured idea on these criteria (1-10 scale):

1. Clarity - How clear and understandable is the idea?
2. Persuasiveness - How convincing is the value proposition?
3. Creativity - How unique and innovative is the solution?
4. Market Potential - How viable is the market opportunity?
5. Feasibility - How realistic is the execution plan?

For each criterion provide a score, 2-3 specific suggestions for improvement,
and the key strengths. Also provide an overall score and summary, the top 3
strengths, the top 3 areas for improvement, and actionable recommendations.

Format as JSON with scores, feedback, and suggestions.`
}

func pitchScriptPrompt(ideaContext string) string {
	limit, ok := pitchTimeLimits[ideaContext]
	if !ok {
		limit = "5 minutes"
	}

	return fmt.Sprintf(`Create a compelling pitch script based on the structured content provided.

Context: %s
Target duration: %s

The script should start with a hook, clearly articulate the problem and
solution, include a compelling story or use case, highlight the unique value
proposition, and end with a strong call to action. Keep it conversational
with natural speaking cues.

Format as a readable script with clear sections and speaking notes.`, ideaContext, limit)
}

func slideContentPrompt() string {
	return `Create slide content based on the structured idea. Generate 6-10 slides
that tell a compelling story: title, problem, solution, market opportunity,
competitive advantage, business model, team/implementation, impact/vision,
and call to action.

Each slide should have a clear title, 3-5 bullet points maximum, and speaker
notes.

Format as JSON array with title, content, and notes for each slide.`
}

func summaryPrompt() string {
	return `Create a concise one-page summary based on the structured idea content.

The summary should be 2-3 paragraphs maximum, highlight the key problem and
solution, include the target audience and value proposition, and be
professional, compelling, and suitable for sharing or printing.

Format as clean, readable text without bullet points.`
}

func questionGenerationPrompt(role, company, experienceLevel string, questionTypes []string, duration int) string {
	// Roughly five minutes per question
	questionCount := duration / 5
	if questionCount < 1 {
		questionCount = 1
	}

	atCompany := ""
	if company != "" {
		atCompany = " at " + company
	}

	return fmt.Sprintf(`Generate %d interview questions for a %s-level %s position%s.

Question types to include: %s

For each question provide the question text, the question type, a difficulty
level (easy/medium/hard), expected keywords/topics, evaluation criteria, and
suggested follow-up questions.

Questions must be relevant to the role and experience level, a realistic mix
of behavioral, technical, and situational, and progressive in difficulty.

Format as JSON array with all question details.`,
		questionCount, experienceLevel, role, atCompany, strings.Join(questionTypes, ", "))
}

func interviewFeedbackPrompt() string {
	return `Provide comprehensive interview feedback based on the performance data.

Structure your feedback as: overall performance summary; strengths (3-5 key
areas); areas for improvement (3-5 specific areas); detailed analysis of
communication skills, technical knowledge, problem-solving ability, and
industry knowledge; specific recommendations; practice suggestions; next
steps. Include a numeric "overallScore" between 0 and 100.

Make the feedback constructive, specific with examples, encouraging but
honest, and professional in tone.

Format as JSON.`
}
